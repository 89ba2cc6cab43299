package actor

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
)

type staticTokenIssuer struct{ token string }

func (i staticTokenIssuer) GenerateAccessToken(id.ActorID, string, time.Duration) (string, error) {
	return i.token, nil
}

type ActorServiceSuite struct {
	suite.Suite
	service *Service
}

func (s *ActorServiceSuite) SetupTest() {
	s.service = NewService(
		NewInMemoryStore(),
		staticTokenIssuer{token: "signed-token"},
		time.Hour,
		audit.NopTrail(),
		slog.New(slog.DiscardHandler),
	)
}

func TestActorServiceSuite(t *testing.T) {
	suite.Run(t, new(ActorServiceSuite))
}

// ----------------------------------------------------------------------------
// Registration
// ----------------------------------------------------------------------------

func (s *ActorServiceSuite) TestRegisterCreatesActor() {
	actor, err := s.service.Register(context.Background(), "imam@example.org", "Imam Yusuf", "correct-horse", RoleMasjidAdmin)
	s.Require().NoError(err)
	s.Equal("imam@example.org", actor.Email)
	s.Equal(RoleMasjidAdmin, actor.Role)
	s.NotEqual("correct-horse", actor.PasswordHash, "password must be stored hashed")
}

func (s *ActorServiceSuite) TestRegisterDerivesDisplayNameFromEmail() {
	actor, err := s.service.Register(context.Background(), "yusuf.khan@example.org", "", "correct-horse", RoleUser)
	s.Require().NoError(err)
	s.Equal("Yusuf Khan", actor.DisplayName)
}

func (s *ActorServiceSuite) TestRegisterNormalizesEmail() {
	actor, err := s.service.Register(context.Background(), "  Imam@Example.ORG ", "Imam Yusuf", "correct-horse", RoleUser)
	s.Require().NoError(err)
	s.Equal("imam@example.org", actor.Email)
}

func (s *ActorServiceSuite) TestRegisterRejectsDuplicateEmail() {
	_, err := s.service.Register(context.Background(), "imam@example.org", "Imam Yusuf", "correct-horse", RoleUser)
	s.Require().NoError(err)

	_, err = s.service.Register(context.Background(), "imam@example.org", "Someone Else", "other-password", RoleUser)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ActorServiceSuite) TestRegisterRejectsStaffRole() {
	_, err := s.service.Register(context.Background(), "admin@example.org", "Admin", "correct-horse", RoleStaff)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *ActorServiceSuite) TestRegisterRejectsShortPassword() {
	_, err := s.service.Register(context.Background(), "imam@example.org", "Imam Yusuf", "short", RoleUser)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// ----------------------------------------------------------------------------
// Authentication
// ----------------------------------------------------------------------------

func (s *ActorServiceSuite) TestAuthenticateIssuesToken() {
	registered, err := s.service.Register(context.Background(), "imam@example.org", "Imam Yusuf", "correct-horse", RoleMasjidAdmin)
	s.Require().NoError(err)

	token, actor, err := s.service.Authenticate(context.Background(), "imam@example.org", "correct-horse")
	s.Require().NoError(err)
	s.Equal("signed-token", token)
	s.Equal(registered.ID, actor.ID)
}

func (s *ActorServiceSuite) TestAuthenticateRejectsBadPassword() {
	_, err := s.service.Register(context.Background(), "imam@example.org", "Imam Yusuf", "correct-horse", RoleUser)
	s.Require().NoError(err)

	_, _, err = s.service.Authenticate(context.Background(), "imam@example.org", "wrong-password")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ActorServiceSuite) TestAuthenticateUnknownEmailSameError() {
	_, _, err := s.service.Authenticate(context.Background(), "nobody@example.org", "whatever-pass")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ActorServiceSuite) TestGetUnknownActor() {
	_, err := s.service.Get(context.Background(), id.NewActorID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
