package masjid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const masjidColumns = `
	id, name, description, latitude, longitude, city, country_code, region,
	is_active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, m *Masjid) error {
	query := `
		INSERT INTO masjids (` + masjidColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(m.ID),
		m.Name,
		m.Description,
		m.Location.Latitude,
		m.Location.Longitude,
		m.Location.City,
		m.Location.CountryCode,
		m.Location.Region,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert masjid: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, masjidID id.MasjidID) (*Masjid, error) {
	query := `SELECT ` + masjidColumns + ` FROM masjids WHERE id = $1`
	return scanMasjid(s.db.QueryRowContext(ctx, query, uuid.UUID(masjidID)))
}

func (s *PostgresStore) Update(ctx context.Context, m *Masjid) error {
	query := `
		UPDATE masjids
		SET name = $2, description = $3, latitude = $4, longitude = $5,
			city = $6, country_code = $7, region = $8, is_active = $9,
			updated_at = $10
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(m.ID),
		m.Name,
		m.Description,
		m.Location.Latitude,
		m.Location.Longitude,
		m.Location.City,
		m.Location.CountryCode,
		m.Location.Region,
		m.IsActive,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update masjid: %w", err)
	}
	return requireRowAffected(result)
}

func (s *PostgresStore) Delete(ctx context.Context, masjidID id.MasjidID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM masjids WHERE id = $1`, uuid.UUID(masjidID))
	if err != nil {
		return fmt.Errorf("delete masjid: %w", err)
	}
	return requireRowAffected(result)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Masjid, error) {
	query := `SELECT ` + masjidColumns + ` FROM masjids WHERE 1=1`
	var args []any

	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	if filter.CountryCode != "" {
		args = append(args, filter.CountryCode)
		query += fmt.Sprintf(` AND country_code = upper($%d)`, len(args))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query masjids: %w", err)
	}
	defer rows.Close()

	var out []*Masjid
	for rows.Next() {
		m, err := scanMasjidRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate masjids: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMasjid(row *sql.Row) (*Masjid, error) {
	m, err := scanMasjidRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return m, err
}

func scanMasjidRow(row rowScanner) (*Masjid, error) {
	var (
		m        Masjid
		masjidID uuid.UUID
	)
	err := row.Scan(
		&masjidID,
		&m.Name,
		&m.Description,
		&m.Location.Latitude,
		&m.Location.Longitude,
		&m.Location.City,
		&m.Location.CountryCode,
		&m.Location.Region,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan masjid: %w", err)
	}
	m.ID = id.MasjidID(masjidID)
	return &m, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
