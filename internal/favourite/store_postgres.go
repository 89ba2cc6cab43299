package favourite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "minar/pkg/domain"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, fav *Favourite) error {
	query := `
		INSERT INTO favourites (actor_id, masjid_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (actor_id, masjid_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(fav.ActorID), uuid.UUID(fav.MasjidID), fav.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert favourite: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, actorID id.ActorID, masjidID id.MasjidID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favourites WHERE actor_id = $1 AND masjid_id = $2`,
		uuid.UUID(actorID), uuid.UUID(masjidID))
	if err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByActor(ctx context.Context, actorID id.ActorID) ([]*Favourite, error) {
	query := `
		SELECT actor_id, masjid_id, created_at
		FROM favourites
		WHERE actor_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(actorID))
	if err != nil {
		return nil, fmt.Errorf("query favourites: %w", err)
	}
	defer rows.Close()

	var out []*Favourite
	for rows.Next() {
		var (
			fav      Favourite
			actor    uuid.UUID
			masjidID uuid.UUID
		)
		if err := rows.Scan(&actor, &masjidID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		fav.ActorID = id.ActorID(actor)
		fav.MasjidID = id.MasjidID(masjidID)
		out = append(out, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favourites: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PurgeMasjid(ctx context.Context, masjidID id.MasjidID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favourites WHERE masjid_id = $1`, uuid.UUID(masjidID))
	if err != nil {
		return fmt.Errorf("purge favourites: %w", err)
	}
	return nil
}
