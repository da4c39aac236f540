// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podcapture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/graphpod/pod/lib/sqlitepool"
)

// Record is one row of the capture index: a summary of a capture file
// recorded to disk, listed by `podump capture captures`.
type Record struct {
	SessionID  SessionID
	Path       string
	StartedAt  time.Time
	ClientID   uint32
	FrameCount int
	ByteSize   int64
}

// Index is a sqlite-backed catalog of recorded capture files, using
// [sqlitepool]'s pooled-connection pragma setup (store.go is the only
// podcapture file that touches a database, so a pool of one
// connection is enough).
type Index struct {
	pool *sqlitepool.Pool
}

// OpenIndex opens (creating if necessary) the sqlite capture index at
// path.
func OpenIndex(path string, logger *slog.Logger) (*Index, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     path,
		PoolSize: 1,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, createCapturesTable, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("podcapture: opening index: %w", err)
	}
	return &Index{pool: pool}, nil
}

const createCapturesTable = `
CREATE TABLE IF NOT EXISTS captures (
	session_id   TEXT PRIMARY KEY,
	path         TEXT NOT NULL,
	started_at   INTEGER NOT NULL,
	client_id    INTEGER NOT NULL,
	frame_count  INTEGER NOT NULL,
	byte_size    INTEGER NOT NULL
);
`

// Close closes the index's underlying connection pool.
func (idx *Index) Close() error {
	return idx.pool.Close()
}

// Put inserts or replaces the index row for a capture.
func (idx *Index) Put(ctx context.Context, record Record) error {
	conn, err := idx.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer idx.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO captures (session_id, path, started_at, client_id, frame_count, byte_size)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			path = excluded.path,
			started_at = excluded.started_at,
			client_id = excluded.client_id,
			frame_count = excluded.frame_count,
			byte_size = excluded.byte_size`,
		&sqlitex.ExecOptions{
			Args: []any{
				string(record.SessionID),
				record.Path,
				record.StartedAt.UnixNano(),
				int64(record.ClientID),
				int64(record.FrameCount),
				record.ByteSize,
			},
		})
	if err != nil {
		return fmt.Errorf("podcapture: indexing capture %s: %w", record.SessionID, err)
	}
	return nil
}

// List returns every indexed capture, most recently started first.
func (idx *Index) List(ctx context.Context) ([]Record, error) {
	conn, err := idx.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer idx.pool.Put(conn)

	var records []Record
	err = sqlitex.Execute(conn,
		`SELECT session_id, path, started_at, client_id, frame_count, byte_size
		 FROM captures ORDER BY started_at DESC`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				records = append(records, Record{
					SessionID:  SessionID(stmt.ColumnText(0)),
					Path:       stmt.ColumnText(1),
					StartedAt:  time.Unix(0, stmt.ColumnInt64(2)),
					ClientID:   uint32(stmt.ColumnInt64(3)),
					FrameCount: int(stmt.ColumnInt64(4)),
					ByteSize:   stmt.ColumnInt64(5),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("podcapture: listing captures: %w", err)
	}
	return records, nil
}

// Get returns the indexed record for sessionID, or ok=false if none
// is indexed.
func (idx *Index) Get(ctx context.Context, sessionID SessionID) (record Record, ok bool, err error) {
	conn, takeErr := idx.pool.Take(ctx)
	if takeErr != nil {
		return Record{}, false, takeErr
	}
	defer idx.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`SELECT session_id, path, started_at, client_id, frame_count, byte_size
		 FROM captures WHERE session_id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{string(sessionID)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record = Record{
					SessionID:  SessionID(stmt.ColumnText(0)),
					Path:       stmt.ColumnText(1),
					StartedAt:  time.Unix(0, stmt.ColumnInt64(2)),
					ClientID:   uint32(stmt.ColumnInt64(3)),
					FrameCount: int(stmt.ColumnInt64(4)),
					ByteSize:   stmt.ColumnInt64(5),
				}
				ok = true
				return nil
			},
		})
	if err != nil {
		return Record{}, false, fmt.Errorf("podcapture: fetching capture %s: %w", sessionID, err)
	}
	return record, ok, nil
}
