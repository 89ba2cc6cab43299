package adminlink

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

const linkColumns = `id, actor_id, masjid_id, verified_identity, verified_at, created_at`

func (s *PostgresStore) Create(ctx context.Context, link *Link) error {
	query := `
		INSERT INTO admin_links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(link.ID),
		uuid.UUID(link.ActorID),
		uuid.UUID(link.MasjidID),
		link.VerifiedIdentity,
		link.VerifiedAt,
		link.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert admin link: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, linkID id.AdminLinkID) (*Link, error) {
	query := `SELECT ` + linkColumns + ` FROM admin_links WHERE id = $1`
	link, err := scanLink(s.db.QueryRowContext(ctx, query, uuid.UUID(linkID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return link, err
}

func (s *PostgresStore) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Link, error) {
	query := `SELECT ` + linkColumns + ` FROM admin_links WHERE masjid_id = $1 ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(masjidID))
	if err != nil {
		return nil, fmt.Errorf("query admin links: %w", err)
	}
	defer rows.Close()

	var out []*Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin links: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListVerifiedActors(ctx context.Context, masjidID id.MasjidID) ([]id.ActorID, error) {
	query := `SELECT actor_id FROM admin_links WHERE masjid_id = $1 AND verified_identity`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(masjidID))
	if err != nil {
		return nil, fmt.Errorf("query verified actors: %w", err)
	}
	defer rows.Close()

	var out []id.ActorID
	for rows.Next() {
		var actorID uuid.UUID
		if err := rows.Scan(&actorID); err != nil {
			return nil, fmt.Errorf("scan verified actor: %w", err)
		}
		out = append(out, id.ActorID(actorID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verified actors: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, link *Link) error {
	query := `
		UPDATE admin_links
		SET verified_identity = $2, verified_at = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(link.ID),
		link.VerifiedIdentity,
		link.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("update admin link: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM admin_links WHERE masjid_id = $1`, uuid.UUID(masjidID)); err != nil {
		return fmt.Errorf("purge admin links: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*Link, error) {
	var (
		link       Link
		linkID     uuid.UUID
		actorID    uuid.UUID
		masjidID   uuid.UUID
		verifiedAt sql.NullTime
	)
	err := row.Scan(&linkID, &actorID, &masjidID, &link.VerifiedIdentity, &verifiedAt, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan admin link: %w", err)
	}
	link.ID = id.AdminLinkID(linkID)
	link.ActorID = id.ActorID(actorID)
	link.MasjidID = id.MasjidID(masjidID)
	if verifiedAt.Valid {
		at := verifiedAt.Time
		link.VerifiedAt = &at
	}
	return &link, nil
}
