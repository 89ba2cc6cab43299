package prayertimes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "minar/pkg/domain"
	"minar/pkg/platform/sentinel"
)

// PostgresStore keeps one row per (masjid, date, prayer) so individual
// prayers stay queryable; the unique constraint covers the triple.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, schedule *Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert schedule: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace the whole day so removed prayers disappear.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM prayer_times WHERE masjid_id = $1 AND prayer_date = $2`,
		uuid.UUID(schedule.MasjidID), string(schedule.Date))
	if err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	for prayer, entry := range schedule.Entries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO prayer_times (masjid_id, prayer_date, prayer, adhan, iqama, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			uuid.UUID(schedule.MasjidID),
			string(schedule.Date),
			string(prayer),
			clockPtr(entry.Adhan),
			clockPtr(entry.Iqama),
			schedule.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert prayer time: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, masjidID id.MasjidID, date Date) (*Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT prayer, adhan, iqama, updated_at
		FROM prayer_times
		WHERE masjid_id = $1 AND prayer_date = $2
	`, uuid.UUID(masjidID), string(date))
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	schedule := &Schedule{
		MasjidID: masjidID,
		Date:     date,
		Entries:  make(map[Prayer]Entry),
	}
	for rows.Next() {
		var (
			prayer string
			adhan  sql.NullString
			iqama  sql.NullString
		)
		if err := rows.Scan(&prayer, &adhan, &iqama, &schedule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prayer time: %w", err)
		}
		var entry Entry
		if adhan.Valid {
			at := ClockTime(adhan.String)
			entry.Adhan = &at
		}
		if iqama.Valid {
			at := ClockTime(iqama.String)
			entry.Iqama = &at
		}
		schedule.Entries[Prayer(prayer)] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prayer times: %w", err)
	}
	if len(schedule.Entries) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return schedule, nil
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM prayer_times WHERE masjid_id = $1`, uuid.UUID(masjidID)); err != nil {
		return fmt.Errorf("purge prayer times: %w", err)
	}
	return nil
}

func clockPtr(ct *ClockTime) *string {
	if ct == nil {
		return nil
	}
	raw := string(*ct)
	return &raw
}
