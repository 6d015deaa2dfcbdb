// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ledger persists snapshot records to a hash-chained SQLite table.
//
// Every appended entry carries the hash of the previous entry, so removing,
// reordering, or editing any stored record breaks the chain from that point
// forward. VerifyChain walks the full table and reports the first break.
package ledger

import (
	"context"
	"crypto/sha512"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	gwerrors "github.com/geowitness/geowitness/pkg/errors"
	"github.com/geowitness/geowitness/pkg/snapshot"
)

// Schema for the custody table. Applied automatically by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS custody (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	snapshot_id TEXT NOT NULL UNIQUE,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	accuracy REAL NOT NULL,
	timestamp INTEGER NOT NULL,
	provider TEXT NOT NULL,
	wifi_info TEXT NOT NULL,
	cell_info TEXT NOT NULL,
	digest TEXT NOT NULL,
	recorded_at INTEGER NOT NULL,
	prev_hash TEXT NOT NULL,
	entry_hash TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_custody_snapshot ON custody(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_custody_recorded ON custody(recorded_at);
`

// GenesisHash is the prev_hash of the first chain entry.
var GenesisHash = strings.Repeat("0", 128)

// ErrNotFound is returned when no entry matches the requested snapshot ID.
var ErrNotFound = errors.New("ledger entry not found")

// ErrChainBroken is returned by VerifyChain when an entry's stored hashes
// do not match recomputation. It carries the CHAIN_BROKEN error code.
var ErrChainBroken error = gwerrors.New(gwerrors.ErrCodeChainBroken, "custody chain broken")

// Entry is one custody record: the snapshot's readings plus the chain
// metadata binding it to its predecessor.
type Entry struct {
	Seq        int64  `json:"seq" yaml:"seq"`
	RecordedAt int64  `json:"recordedAt" yaml:"recordedAt"`
	PrevHash   string `json:"prevHash" yaml:"prevHash"`
	EntryHash  string `json:"entryHash" yaml:"entryHash"`

	Snapshot snapshot.GeoSnapshot `json:"snapshot" yaml:"snapshot"`
}

// Ledger is an append-only custody store backed by SQLite.
// Append is serialized internally; reads may run concurrently.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the ledger database at path and applies
// the schema. Parent directories are created. WAL mode keeps readers from
// blocking the appender.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// OpenMemory opens an in-memory ledger, used in tests.
func OpenMemory() (*Ledger, error) {
	return Open(":memory:")
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append records s as the new chain tail and returns the stored entry.
// The snapshot's own digest is verified first; records that fail their own
// integrity check are never admitted to the chain.
func (l *Ledger) Append(ctx context.Context, s *snapshot.GeoSnapshot) (*Entry, error) {
	if s == nil {
		return nil, errors.New("nil snapshot")
	}
	if !s.Verify() {
		return nil, gwerrors.NewWithContext(gwerrors.ErrCodeDigestMismatch,
			"snapshot failed digest verification", map[string]any{"snapshotId": s.ID})
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger tx: %w", err)
	}
	defer tx.Rollback()

	prevHash := GenesisHash
	err = tx.QueryRowContext(ctx,
		`SELECT entry_hash FROM custody ORDER BY seq DESC LIMIT 1`).Scan(&prevHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read chain tail: %w", err)
	}

	e := &Entry{
		RecordedAt: time.Now().UnixMilli(),
		PrevHash:   prevHash,
		Snapshot:   *s,
	}
	e.EntryHash = chainHash(e)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO custody (snapshot_id, latitude, longitude, accuracy, timestamp,
			provider, wifi_info, cell_info, digest, recorded_at, prev_hash, entry_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Latitude, s.Longitude, s.Accuracy, s.Timestamp,
		s.Provider, s.WifiInfo, s.CellInfo, s.Digest,
		e.RecordedAt, e.PrevHash, e.EntryHash)
	if err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	if e.Seq, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read entry seq: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger entry: %w", err)
	}
	return e, nil
}

// List returns entries in append order. A limit of 0 returns everything.
func (l *Ledger) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT seq, snapshot_id, latitude, longitude, accuracy, timestamp,
		provider, wifi_info, cell_info, digest, recorded_at, prev_hash, entry_hash
	FROM custody ORDER BY seq`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger: %w", err)
	}
	return entries, nil
}

// GetBySnapshotID returns the entry for the given snapshot ID, or
// ErrNotFound when it was never recorded.
func (l *Ledger) GetBySnapshotID(ctx context.Context, id string) (*Entry, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT seq, snapshot_id, latitude, longitude, accuracy, timestamp,
			provider, wifi_info, cell_info, digest, recorded_at, prev_hash, entry_hash
		FROM custody WHERE snapshot_id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Count returns the number of chain entries.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM custody`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return n, nil
}

// VerifyChain walks every entry in sequence order, recomputing the snapshot
// digest, the entry hash, and the link to the previous entry. It returns nil
// for an intact chain (including an empty one), or an error wrapping
// ErrChainBroken naming the first bad sequence number.
func (l *Ledger) VerifyChain(ctx context.Context) error {
	entries, err := l.List(ctx, 0)
	if err != nil {
		return err
	}

	prevHash := GenesisHash
	for i := range entries {
		e := &entries[i]
		if !e.Snapshot.Verify() {
			return fmt.Errorf("%w: entry %d snapshot digest mismatch", ErrChainBroken, e.Seq)
		}
		if e.PrevHash != prevHash {
			return fmt.Errorf("%w: entry %d prev hash mismatch", ErrChainBroken, e.Seq)
		}
		if e.EntryHash != chainHash(e) {
			return fmt.Errorf("%w: entry %d entry hash mismatch", ErrChainBroken, e.Seq)
		}
		prevHash = e.EntryHash
	}
	return nil
}

// chainHash binds an entry to its predecessor: SHA-512 over the previous
// entry hash, the snapshot digest, the snapshot ID, and the recording time.
func chainHash(e *Entry) string {
	input := strings.Join([]string{
		e.PrevHash,
		e.Snapshot.Digest,
		e.Snapshot.ID,
		strconv.FormatInt(e.RecordedAt, 10),
	}, ",")
	sum := sha512.Sum512([]byte(input))
	return hex.EncodeToString(sum[:])
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.Seq, &e.Snapshot.ID, &e.Snapshot.Latitude, &e.Snapshot.Longitude,
		&e.Snapshot.Accuracy, &e.Snapshot.Timestamp, &e.Snapshot.Provider,
		&e.Snapshot.WifiInfo, &e.Snapshot.CellInfo, &e.Snapshot.Digest,
		&e.RecordedAt, &e.PrevHash, &e.EntryHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
	}
	return &e, nil
}
