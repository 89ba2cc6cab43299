package badge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "minar/pkg/domain"
	"minar/internal/platform/postgres"
	"minar/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const badgeColumns = `id, token, masjid_id, issued_by, issued_at, expiry_date, is_active, is_revoked, last_checked_at`

func (s *PostgresStore) Create(ctx context.Context, b *Badge) error {
	query := `
		INSERT INTO badges (` + badgeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(b.ID),
		b.Token,
		uuid.UUID(b.MasjidID),
		uuid.UUID(b.IssuedBy),
		b.IssuedAt,
		b.ExpiryDate,
		b.IsActive,
		b.IsRevoked,
		b.LastCheckedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert badge: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, badgeID id.BadgeID) (*Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE id = $1`
	return s.findOne(ctx, query, uuid.UUID(badgeID))
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (*Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE token = $1`
	return s.findOne(ctx, query, token)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*Badge, error) {
	b, err := scanBadge(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return b, err
}

func (s *PostgresStore) Update(ctx context.Context, b *Badge) error {
	query := `
		UPDATE badges
		SET expiry_date = $2, is_active = $3, is_revoked = $4, last_checked_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(b.ID),
		b.ExpiryDate,
		b.IsActive,
		b.IsRevoked,
		b.LastCheckedAt,
	)
	if err != nil {
		return fmt.Errorf("update badge: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update badge rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE masjid_id = $1 ORDER BY issued_at DESC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(masjidID))
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var out []*Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate badges: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM badges WHERE masjid_id = $1`, uuid.UUID(masjidID))
	if err != nil {
		return fmt.Errorf("purge badges: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBadge(row rowScanner) (*Badge, error) {
	var (
		b           Badge
		badgeID     uuid.UUID
		masjidID    uuid.UUID
		issuedBy    uuid.UUID
		expiry      sql.NullTime
		lastChecked sql.NullTime
	)
	err := row.Scan(&badgeID, &b.Token, &masjidID, &issuedBy, &b.IssuedAt,
		&expiry, &b.IsActive, &b.IsRevoked, &lastChecked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan badge: %w", err)
	}
	b.ID = id.BadgeID(badgeID)
	b.MasjidID = id.MasjidID(masjidID)
	b.IssuedBy = id.ActorID(issuedBy)
	if expiry.Valid {
		at := expiry.Time
		b.ExpiryDate = &at
	}
	if lastChecked.Valid {
		at := lastChecked.Time
		b.LastCheckedAt = &at
	}
	return &b, nil
}
