package actor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"minar/internal/platform/postgres"
	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, actor *Actor) error {
	query := `
		INSERT INTO actors (id, email, display_name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(actor.ID),
		actor.Email,
		actor.DisplayName,
		actor.PasswordHash,
		string(actor.Role),
		actor.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, actorID id.ActorID) (*Actor, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, created_at
		FROM actors
		WHERE id = $1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, uuid.UUID(actorID)))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Actor, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, created_at
		FROM actors
		WHERE email = lower($1)
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) scanOne(row *sql.Row) (*Actor, error) {
	var (
		actor   Actor
		actorID uuid.UUID
		role    string
	)
	err := row.Scan(&actorID, &actor.Email, &actor.DisplayName, &actor.PasswordHash, &role, &actor.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan actor: %w", err)
	}
	actor.ID = id.ActorID(actorID)
	actor.Role = Role(role)
	return &actor, nil
}
