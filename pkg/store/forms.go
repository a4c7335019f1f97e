package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Record is a stored document with its revision counter.
type Record struct {
	Name     string
	Revision int64
	Document model.Document
}

// Summary describes a stored document without decoding it.
type Summary struct {
	Name     string
	Revision int64
}

// Save upserts doc under name and returns the new revision. The first save
// is revision 1; each later save increments it.
func (s *Store) Save(ctx context.Context, name string, doc model.Document) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalidName
	}
	if err := doc.Validate(); err != nil {
		return 0, fmt.Errorf("store: save %q: %w", name, err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("store: encode %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO forms (name, document, revision) VALUES (?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			revision = forms.revision + 1
	`, name, string(payload)); err != nil {
		return 0, fmt.Errorf("store: save %q: %w", name, err)
	}

	var revision int64
	if err := tx.QueryRowContext(ctx, `SELECT revision FROM forms WHERE name = ?`, name).Scan(&revision); err != nil {
		return 0, fmt.Errorf("store: read revision %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return revision, nil
}

// Load returns the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (Record, error) {
	var (
		payload  string
		revision int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT document, revision FROM forms WHERE name = ?`, name).Scan(&payload, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: load %q: %w", name, err)
	}

	doc, err := model.DecodeDocument([]byte(payload))
	if err != nil {
		return Record{}, fmt.Errorf("store: decode %q: %w", name, err)
	}
	return Record{Name: name, Revision: revision, Document: doc}, nil
}

// List returns every stored document ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, revision FROM forms ORDER BY name COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.Name, &summary.Revision); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate: %w", err)
	}
	return out, nil
}

// Delete removes the document stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM forms WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
