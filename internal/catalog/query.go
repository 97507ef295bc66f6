// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Module is one cataloged region with its document context.
type Module struct {
	File      string `json:"file" yaml:"file"`
	Document  string `json:"document" yaml:"document"`
	Category  string `json:"category" yaml:"category"`
	Version   string `json:"version" yaml:"version"`
	Heading   string `json:"heading" yaml:"heading"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	Lines     int    `json:"lines" yaml:"lines"`
	Content   string `json:"content,omitempty" yaml:"content,omitempty"`
}

const moduleColumns = `m.file, m.document, m.category, m.version, m.heading,
	m.start_line, m.end_line, m.lines, m.content`

// Search runs a full-text query over module content. A limit of zero uses
// the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Module, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+moduleColumns+`
		 FROM modules_fts
		 JOIN modules m ON m.rowid = modules_fts.docid
		 WHERE modules_fts MATCH ?
		 ORDER BY m.category, m.version, m.file
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching modules: %w", err)
	}
	return scanModules(rows)
}

// List returns every cataloged module, optionally restricted to one
// category, ordered by document and position.
func (s *Store) List(ctx context.Context, category string) ([]Module, error) {
	q := `SELECT ` + moduleColumns + ` FROM modules m`
	var args []any
	if category != "" {
		q += ` WHERE m.category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY m.document, m.start_line`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	return scanModules(rows)
}

func scanModules(rows *sql.Rows) ([]Module, error) {
	defer rows.Close()
	var out []Module
	for rows.Next() {
		var (
			m       Module
			heading sql.NullString
		)
		if err := rows.Scan(&m.File, &m.Document, &m.Category, &m.Version, &heading,
			&m.StartLine, &m.EndLine, &m.Lines, &m.Content); err != nil {
			return nil, fmt.Errorf("scanning module: %w", err)
		}
		m.Heading = heading.String
		out = append(out, m)
	}
	return out, rows.Err()
}
