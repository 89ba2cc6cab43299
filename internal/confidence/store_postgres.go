package confidence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
	txcontext "minar/pkg/platform/tx"
)

// PostgresStore persists confidence records. All queries go through the
// transaction carried in the context when one is present, so RunInTx keeps
// the read-modify-write atomic.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Get(ctx context.Context, masjidID id.MasjidID) (*Record, error) {
	query := `
		SELECT masjid_id, level, last_confirmation_date, decay_date
		FROM confidence_records
		WHERE masjid_id = $1
	`
	// FOR UPDATE inside a transaction locks the row for the duration of the
	// read-modify-write.
	if _, inTx := txcontext.From(ctx); inTx {
		query += ` FOR UPDATE`
	}

	row := s.querier(ctx).QueryRowContext(ctx, query, uuid.UUID(masjidID))
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return record, err
}

func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO confidence_records (masjid_id, level, last_confirmation_date, decay_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (masjid_id)
		DO UPDATE SET level = $2, last_confirmation_date = $3, decay_date = $4
	`
	_, err := s.querier(ctx).ExecContext(ctx, query,
		uuid.UUID(record.MasjidID),
		int(record.Level),
		record.LastConfirmationDate,
		record.DecayDate,
	)
	if err != nil {
		return fmt.Errorf("upsert confidence record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListOverdue(ctx context.Context, now time.Time) ([]*Record, error) {
	query := `
		SELECT masjid_id, level, last_confirmation_date, decay_date
		FROM confidence_records
		WHERE level > 0 AND decay_date IS NOT NULL AND decay_date <= $1
	`
	return s.queryRecords(ctx, query, now)
}

func (s *PostgresStore) ListByLevel(ctx context.Context, level Level) ([]*Record, error) {
	query := `
		SELECT masjid_id, level, last_confirmation_date, decay_date
		FROM confidence_records
		WHERE level = $1
	`
	return s.queryRecords(ctx, query, int(level))
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	_, err := s.querier(ctx).ExecContext(ctx,
		`DELETE FROM confidence_records WHERE masjid_id = $1`, uuid.UUID(masjidID))
	if err != nil {
		return fmt.Errorf("purge confidence record: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query confidence records: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confidence records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record    Record
		masjidID  uuid.UUID
		level     int
		decayDate sql.NullTime
	)
	err := row.Scan(&masjidID, &level, &record.LastConfirmationDate, &decayDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan confidence record: %w", err)
	}
	record.MasjidID = id.MasjidID(masjidID)
	record.Level = Level(level)
	if decayDate.Valid {
		at := decayDate.Time
		record.DecayDate = &at
	}
	return &record, nil
}
