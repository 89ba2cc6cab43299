package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "minar/pkg/domain"
)

// PostgresStore persists audit events in the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			id, timestamp, actor_id, masjid_id, subject, action,
			outcome, reason, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var masjidID *uuid.UUID
	if !event.MasjidID.IsNil() {
		mid := uuid.UUID(event.MasjidID)
		masjidID = &mid
	}

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.ActorID,
		masjidID,
		event.Subject,
		event.Action,
		event.Outcome,
		event.Reason,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]Event, error) {
	query := `
		SELECT timestamp, actor_id, masjid_id, subject, action,
			   outcome, reason, request_id
		FROM audit_events
		WHERE masjid_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(masjidID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT timestamp, actor_id, masjid_id, subject, action,
			   outcome, reason, request_id
		FROM audit_events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event

	for rows.Next() {
		var (
			event    Event
			masjidID *uuid.UUID
		)
		err := rows.Scan(
			&event.Timestamp,
			&event.ActorID,
			&masjidID,
			&event.Subject,
			&event.Action,
			&event.Outcome,
			&event.Reason,
			&event.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if masjidID != nil {
			event.MasjidID = id.MasjidID(*masjidID)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
