package signal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "minar/pkg/domain"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, sig *Signal) error {
	query := `
		INSERT INTO signals (id, masjid_id, actor_id, type, source, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var actorID *uuid.UUID
	if sig.ActorID != nil {
		aid := uuid.UUID(*sig.ActorID)
		actorID = &aid
	}

	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(sig.ID),
		uuid.UUID(sig.MasjidID),
		actorID,
		string(sig.Type),
		string(sig.Source),
		sig.Description,
		sig.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByMasjid(ctx context.Context, masjidID id.MasjidID) ([]*Signal, error) {
	query := `
		SELECT id, masjid_id, actor_id, type, source, description, created_at
		FROM signals
		WHERE masjid_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(masjidID))
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var out []*Signal
	for rows.Next() {
		var (
			sig      Signal
			signalID uuid.UUID
			mid      uuid.UUID
			actorID  *uuid.UUID
			sigType  string
			source   string
		)
		if err := rows.Scan(&signalID, &mid, &actorID, &sigType, &source, &sig.Description, &sig.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		sig.ID = id.SignalID(signalID)
		sig.MasjidID = id.MasjidID(mid)
		if actorID != nil {
			aid := id.ActorID(*actorID)
			sig.ActorID = &aid
		}
		sig.Type = Type(sigType)
		sig.Source = Source(source)
		out = append(out, &sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signals: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CountDistinctUserActors(ctx context.Context, masjidID id.MasjidID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT actor_id)
		FROM signals
		WHERE masjid_id = $1
		  AND source = 'USER'
		  AND actor_id IS NOT NULL
		  AND created_at >= $2
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, uuid.UUID(masjidID), since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count distinct user actors: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM signals WHERE masjid_id = $1`, uuid.UUID(masjidID)); err != nil {
		return fmt.Errorf("purge signals: %w", err)
	}
	return nil
}
