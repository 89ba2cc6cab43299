package verification

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

const documentColumns = `id, admin_link_id, description, reviewed, approved, review_notes, submitted_at, reviewed_at`

func (s *PostgresStore) Create(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO verification_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		uuid.UUID(doc.AdminLinkID),
		doc.Description,
		doc.Reviewed,
		doc.Approved,
		doc.ReviewNotes,
		doc.SubmittedAt,
		doc.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, documentID id.DocumentID) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM verification_documents WHERE id = $1`
	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, uuid.UUID(documentID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return doc, err
}

func (s *PostgresStore) Update(ctx context.Context, doc *Document) error {
	query := `
		UPDATE verification_documents
		SET reviewed = $2, approved = $3, review_notes = $4, reviewed_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		doc.Reviewed,
		doc.Approved,
		doc.ReviewNotes,
		doc.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("update verification document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update verification document rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByAdminLink(ctx context.Context, linkID id.AdminLinkID) ([]*Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE admin_link_id = $1
		ORDER BY submitted_at ASC
	`
	return s.queryDocuments(ctx, query, uuid.UUID(linkID))
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]*Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM verification_documents
		WHERE reviewed = FALSE
		ORDER BY submitted_at ASC
	`
	return s.queryDocuments(ctx, query)
}

func (s *PostgresStore) queryDocuments(ctx context.Context, query string, args ...any) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verification documents: %w", err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification documents: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc        Document
		documentID uuid.UUID
		linkID     uuid.UUID
		reviewedAt sql.NullTime
	)
	err := row.Scan(&documentID, &linkID, &doc.Description, &doc.Reviewed,
		&doc.Approved, &doc.ReviewNotes, &doc.SubmittedAt, &reviewedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan verification document: %w", err)
	}
	doc.ID = id.DocumentID(documentID)
	doc.AdminLinkID = id.AdminLinkID(linkID)
	if reviewedAt.Valid {
		at := reviewedAt.Time
		doc.ReviewedAt = &at
	}
	return &doc, nil
}
