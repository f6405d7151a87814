package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iksnae/chat-explorer/internal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS conversations (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	create_time REAL,
	update_time REAL
);
CREATE TABLE IF NOT EXISTS messages (
	conversation_id TEXT NOT NULL REFERENCES conversations(id),
	seq             INTEGER NOT NULL,
	id              TEXT NOT NULL,
	role            TEXT NOT NULL,
	create_time     REAL,
	text            TEXT NOT NULL,
	has_image       INTEGER NOT NULL,
	model_slug      TEXT,
	meta            TEXT NOT NULL,
	PRIMARY KEY (conversation_id, seq)
);
CREATE TABLE IF NOT EXISTS media (
	conversation_id TEXT NOT NULL,
	message_seq     INTEGER NOT NULL,
	kind            TEXT NOT NULL,
	src             TEXT NOT NULL,
	mime            TEXT,
	pointer         TEXT,
	resolved        INTEGER NOT NULL
);
`

// SQLiteWriter writes conversations into a single SQLite file. Re-writing a
// conversation replaces its earlier rows.
type SQLiteWriter struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the export database at path
func OpenSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &internal.ExportError{Format: "sqlite", Path: path, Err: err}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, &internal.ExportError{Format: "sqlite", Path: path, Err: fmt.Errorf("create schema: %w", err)}
	}
	return &SQLiteWriter{db: db, path: path}, nil
}

// DB exposes the underlying handle for queries
func (s *SQLiteWriter) DB() *sql.DB {
	return s.db
}

// Write stores one conversation with its messages and media in a transaction
func (s *SQLiteWriter) Write(ctx context.Context, conv *internal.Conversation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM media WHERE conversation_id = ?",
		"DELETE FROM messages WHERE conversation_id = ?",
		"DELETE FROM conversations WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, conv.ID); err != nil {
			return s.wrap(err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO conversations (id, title, create_time, update_time) VALUES (?, ?, ?, ?)",
		conv.ID, conv.Title, nullFloat(conv.CreateTime), nullFloat(conv.UpdateTime),
	); err != nil {
		return s.wrap(err)
	}

	for seq, msg := range conv.Messages {
		meta, err := json.Marshal(msg.Meta)
		if err != nil {
			return s.wrap(fmt.Errorf("encode meta: %w", err))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (conversation_id, seq, id, role, create_time, text, has_image, model_slug, meta)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			conv.ID, seq, msg.ID, msg.Role, nullFloat(msg.CreateTime), msg.Text, msg.HasImage,
			sql.NullString{String: msg.Meta.ModelSlug, Valid: msg.Meta.ModelSlug != ""}, string(meta),
		); err != nil {
			return s.wrap(err)
		}

		for _, m := range msg.Media {
			var pointer sql.NullString
			if m.Pointer != nil {
				pointer = sql.NullString{String: m.Pointer.String(), Valid: true}
			}
			var mime sql.NullString
			if m.Mime != nil {
				mime = sql.NullString{String: *m.Mime, Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO media (conversation_id, message_seq, kind, src, mime, pointer, resolved)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				conv.ID, seq, string(m.Kind), m.Src, mime, pointer, m.Resolved,
			); err != nil {
				return s.wrap(err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return s.wrap(err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}

func (s *SQLiteWriter) wrap(err error) error {
	return &internal.ExportError{Format: "sqlite", Path: s.path, Err: err}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
