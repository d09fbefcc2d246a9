// Package sqlhost serves a namespace tree stored in SQLite. Trees are loaded
// from the same YAML fixtures the in-memory host reads.
package sqlhost

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/host/fixture"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/names"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// Host is a host.Host backed by a SQLite database.
type Host struct {
	db     *sql.DB
	dbPath string
}

var (
	_ host.Host      = (*Host)(nil)
	_ host.Describer = (*Host)(nil)
)

// Open opens (creating if needed) the namespace database at dbPath.
func Open(dbPath string) (*Host, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	h := &Host{db: db, dbPath: dbPath}
	if err := h.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize namespace database: %w", err)
	}
	return h, nil
}

// init creates the database schema
func (h *Host) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id BLOB PRIMARY KEY,
		parent_id BLOB,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		parse_name TEXT NOT NULL,
		label TEXT NOT NULL,
		flags INTEGER NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		path_key TEXT NOT NULL DEFAULT '',
		special_ref TEXT NOT NULL DEFAULT '',
		special_key TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id, seq);
	CREATE INDEX IF NOT EXISTS idx_items_path_key ON items(path_key);
	CREATE INDEX IF NOT EXISTS idx_items_special_key ON items(special_key);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Close closes the namespace database
func (h *Host) Close() error {
	return h.db.Close()
}

// Import replaces the stored tree with f and returns the number of items
// written. Concurrent imports into the same database are serialized with a
// lock file next to it.
func (h *Host) Import(ctx context.Context, f *fixture.Fixture) (int, error) {
	recs, err := f.Records()
	if err != nil {
		return 0, err
	}

	lock := flock.New(h.dbPath + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !locked {
		return 0, fmt.Errorf("failed to acquire import lock on %s", h.dbPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO items (id, parent_id, seq, name, parse_name, label, flags, path, path_key, special_ref, special_key)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for seq, rec := range recs {
		id, err := idlist.Encode(rec.ID)
		if err != nil {
			return 0, fmt.Errorf("encode %q: %w", rec.Item.Name, err)
		}
		var parent []byte
		if rec.Parent != nil {
			if parent, err = idlist.Encode(rec.Parent); err != nil {
				return 0, fmt.Errorf("encode parent of %q: %w", rec.Item.Name, err)
			}
		}
		var pathKey, specialKey string
		if rec.Path != "" {
			pathKey = pathtype.Normalize(rec.Path)
		}
		if rec.Special != "" {
			specialKey = names.Fold(rec.Special)
		}
		_, err = stmt.ExecContext(ctx,
			id, parent, seq, rec.Item.Name, rec.Item.ParseName, rec.Item.Label,
			int64(rec.Item.Flags), rec.Path, pathKey, rec.Special, specialKey,
		)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", rec.Item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Count returns the number of stored items.
func (h *Host) Count() (int, error) {
	var n int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ResolveIdentifierForPath implements host.Host. Several items can share a
// path; the first in tree order wins and the Desktop root comes last.
func (h *Host) ResolveIdentifierForPath(path string) (idlist.IDList, error) {
	query := `
	SELECT id FROM items WHERE path_key = ?
	ORDER BY parent_id IS NULL, seq LIMIT 1
	`

	var raw []byte
	err := h.db.QueryRow(query, pathtype.Normalize(path)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) || path == "" {
		return nil, fmt.Errorf("no item at %q: %w", path, shellerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return idlist.Decode(raw)
}

// ResolvePathForIdentifier implements host.Host.
func (h *Host) ResolvePathForIdentifier(id idlist.IDList) (string, error) {
	key, err := idlist.Encode(id)
	if err != nil {
		return "", err
	}

	var name, path string
	err = h.db.QueryRow("SELECT name, path FROM items WHERE id = ?", key).Scan(&name, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("no item with id %s: %w", id, shellerr.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("%q has no file-system path: %w", name, shellerr.ErrNotFound)
	}
	return path, nil
}

// ResolveSpecialLocation implements host.Host.
func (h *Host) ResolveSpecialLocation(ref string) (idlist.IDList, error) {
	key := names.Fold(pathtype.NormalizeSpecialRef(ref))

	var raw []byte
	err := h.db.QueryRow("SELECT id FROM items WHERE special_key = ? ORDER BY seq LIMIT 1", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) || key == "" {
		return nil, fmt.Errorf("no special location %q: %w", ref, shellerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return idlist.Decode(raw)
}

// EnumerateChildren implements host.Host. The rows stay open only while the
// sequence is being ranged over.
func (h *Host) EnumerateChildren(id idlist.IDList) iter.Seq2[host.Child, error] {
	return func(yield func(host.Child, error) bool) {
		key, err := idlist.Encode(id)
		if err != nil {
			yield(host.Child{}, err)
			return
		}
		if ok, err := h.exists(key); err != nil || !ok {
			if err == nil {
				err = fmt.Errorf("no item with id %s: %w", id, shellerr.ErrNotFound)
			}
			yield(host.Child{}, err)
			return
		}

		rows, err := h.db.Query(`
		SELECT id, name, parse_name, label, flags
		FROM items WHERE parent_id = ? ORDER BY seq
		`, key)
		if err != nil {
			yield(host.Child{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanChild(rows)
			if err != nil {
				yield(host.Child{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(host.Child{}, err)
		}
	}
}

// ListAllSpecialLocations implements host.Host.
func (h *Host) ListAllSpecialLocations() ([]host.SpecialLocation, error) {
	rows, err := h.db.Query("SELECT special_ref, id FROM items WHERE special_ref <> '' ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []host.SpecialLocation
	for rows.Next() {
		var (
			s   host.SpecialLocation
			raw []byte
		)
		if err := rows.Scan(&s.Ref, &raw); err != nil {
			return nil, err
		}
		if s.ID, err = idlist.Decode(raw); err != nil {
			return nil, fmt.Errorf("decode id of %s: %w", s.Ref, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Describe implements host.Describer.
func (h *Host) Describe(id idlist.IDList) (host.Child, error) {
	key, err := idlist.Encode(id)
	if err != nil {
		return host.Child{}, err
	}
	c, err := scanChild(h.db.QueryRow("SELECT id, name, parse_name, label, flags FROM items WHERE id = ?", key))
	if errors.Is(err, sql.ErrNoRows) {
		return host.Child{}, fmt.Errorf("no item with id %s: %w", id, shellerr.ErrNotFound)
	}
	return c, err
}

func (h *Host) exists(key []byte) (bool, error) {
	var one int
	err := h.db.QueryRow("SELECT 1 FROM items WHERE id = ?", key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

type scanner interface {
	Scan(dest ...any) error
}

// scanChild reads one item row. The returned ID is the item's last segment,
// or the empty list for the Desktop root.
func scanChild(s scanner) (host.Child, error) {
	var (
		c     host.Child
		raw   []byte
		flags int64
	)
	if err := s.Scan(&raw, &c.Name, &c.ParseName, &c.Label, &flags); err != nil {
		return host.Child{}, err
	}
	full, err := idlist.Decode(raw)
	if err != nil {
		return host.Child{}, fmt.Errorf("decode id of %q: %w", c.Name, err)
	}
	c.Flags = location.ItemFlags(flags)
	c.ID = idlist.Desktop()
	if _, child, ok := idlist.SplitLast(full); ok {
		c.ID = child
	}
	return c, nil
}
