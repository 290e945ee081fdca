package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/esquery/internal/value"
)

// Document is a stored rendered document.
type Document struct {
	Fingerprint string
	Name        string
	Body        value.Map
	Seq         int64
}

// Save stores doc under name and returns its fingerprint.
// Uses ON CONFLICT(fingerprint) DO NOTHING: saving an identical document
// again keeps the original name and sequence number.
func (s *Store) Save(ctx context.Context, name string, doc value.Map) (string, error) {
	fingerprint, err := value.Fingerprint(doc)
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	body, err := value.MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (fingerprint, name, body, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM documents))
		ON CONFLICT(fingerprint) DO NOTHING
	`, fingerprint, name, string(body))
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	slog.Debug("document saved",
		"name", name,
		"fingerprint", fingerprint,
		"inserted", inserted == 1)

	return fingerprint, nil
}

// Get returns the document with the given fingerprint.
// Returns sql.ErrNoRows if not found.
func (s *Store) Get(ctx context.Context, fingerprint string) (Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, name, body, seq
		FROM documents
		WHERE fingerprint = ?
	`, fingerprint)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return Document{}, err
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns every stored document ordered by name, then fingerprint.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, name, body, seq
		FROM documents
		ORDER BY name COLLATE BINARY ASC, fingerprint COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (Document, error) {
	var doc Document
	var body string
	if err := row.Scan(&doc.Fingerprint, &doc.Name, &body, &doc.Seq); err != nil {
		if err == sql.ErrNoRows {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("scan document: %w", err)
	}

	m, err := value.UnmarshalMap([]byte(body))
	if err != nil {
		return Document{}, fmt.Errorf("decode document %s: %w", doc.Fingerprint, err)
	}
	doc.Body = m
	return doc, nil
}
