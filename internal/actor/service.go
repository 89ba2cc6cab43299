package actor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/platform/sentinel"
	"minar/pkg/requestcontext"
)

const minPasswordLength = 8

// TokenIssuer mints access tokens for authenticated actors.
type TokenIssuer interface {
	GenerateAccessToken(actorID id.ActorID, role string, expiresIn time.Duration) (string, error)
}

// Service handles actor registration and authentication.
type Service struct {
	store    Store
	tokens   TokenIssuer
	tokenTTL time.Duration
	trail    *audit.Trail
	logger   *slog.Logger
}

func NewService(store Store, tokens TokenIssuer, tokenTTL time.Duration, trail *audit.Trail, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		trail:    trail,
		logger:   logger,
	}
}

// Register creates a new actor with a bcrypt-hashed password. Staff accounts
// cannot be self-registered.
func (s *Service) Register(ctx context.Context, email, displayName, password string, role Role) (*Actor, error) {
	if role == RoleStaff {
		return nil, dErrors.New(dErrors.CodeForbidden, "staff accounts cannot be self-registered")
	}
	if len(password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	actor, err := NewActor(id.NewActorID(), email, displayName, string(hash), role, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, actor); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create actor")
	}

	s.trail.Emit(ctx, audit.Event{
		ActorID: actor.ID.String(),
		Subject: actor.Email,
		Action:  string(audit.EventActorRegistered),
	})
	s.logger.InfoContext(ctx, "actor registered",
		"actor_id", actor.ID,
		"role", actor.Role,
	)

	return actor, nil
}

// Authenticate verifies credentials and returns a signed access token. The
// same unauthorized error is returned for unknown emails and bad passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, *Actor, error) {
	actor, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.emitAuthFailed(ctx, email, "unknown_email")
			return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up actor")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(password)); err != nil {
		s.emitAuthFailed(ctx, email, "bad_password")
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(actor.ID, string(actor.Role), s.tokenTTL)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	return token, actor, nil
}

// Get returns an actor by ID.
func (s *Service) Get(ctx context.Context, actorID id.ActorID) (*Actor, error) {
	actor, err := s.store.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "actor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up actor")
	}
	return actor, nil
}

func (s *Service) emitAuthFailed(ctx context.Context, email, reason string) {
	s.trail.Emit(ctx, audit.Event{
		Subject: email,
		Action:  string(audit.EventAuthFailed),
		Reason:  reason,
	})
	s.logger.WarnContext(ctx, "authentication failed",
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
}
