package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lixenwraith/orbitals/parameter"
)

// OpenStore opens the shared SQLite database with peer-friendly defaults
// and applies pending migrations
func OpenStore(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir registry dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, parameter.RegistryBusyTimeoutMs)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate registry: %w", err)
	}
	return db, nil
}

// withTx runs fn in a transaction
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertViewport(ctx context.Context, db *sql.DB, v Viewport, now time.Time) error {
	meta, err := json.Marshal(v.Meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		var seq int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM viewports`).Scan(&seq); err != nil {
			return fmt.Errorf("next seq: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO viewports (id, seq, x, y, w, h, meta, heartbeat) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, seq, v.Shape.X, v.Shape.Y, v.Shape.W, v.Shape.H, string(meta), now.UnixMilli())
		if err != nil {
			return fmt.Errorf("insert viewport: %w", err)
		}
		return nil
	})
}

func updateShape(ctx context.Context, db *sql.DB, id string, s Shape, now time.Time) (bool, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE viewports SET x = ?, y = ?, w = ?, h = ?, heartbeat = ? WHERE id = ?`,
		s.X, s.Y, s.W, s.H, now.UnixMilli(), id)
	if err != nil {
		return false, fmt.Errorf("update shape: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// touchViewport refreshes the heartbeat; false means a peer evicted the row
func touchViewport(ctx context.Context, db *sql.DB, id string, now time.Time) (bool, error) {
	res, err := db.ExecContext(ctx, `UPDATE viewports SET heartbeat = ? WHERE id = ?`, now.UnixMilli(), id)
	if err != nil {
		return false, fmt.Errorf("touch viewport: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func evictStale(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM viewports WHERE heartbeat < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("evict stale: %w", err)
	}
	return res.RowsAffected()
}

func deleteViewport(ctx context.Context, db *sql.DB, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM viewports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete viewport: %w", err)
	}
	return nil
}

// listViewports returns rows in join order, dropping malformed descriptors
func listViewports(ctx context.Context, db *sql.DB, dst []Viewport) ([]Viewport, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, x, y, w, h, meta FROM viewports ORDER BY seq, id`)
	if err != nil {
		return dst, fmt.Errorf("list viewports: %w", err)
	}
	defer rows.Close()

	dst = dst[:0]
	for rows.Next() {
		var v Viewport
		var meta string
		if err := rows.Scan(&v.ID, &v.Shape.X, &v.Shape.Y, &v.Shape.W, &v.Shape.H, &meta); err != nil {
			return dst, fmt.Errorf("scan viewport: %w", err)
		}
		if !v.Shape.Valid() {
			log.Printf("registry: dropping viewport %s with invalid shape %s", v.ID, v.Shape)
			continue
		}
		if meta != "" && meta != "{}" && meta != "null" {
			if err := json.Unmarshal([]byte(meta), &v.Meta); err != nil {
				log.Printf("registry: viewport %s meta unreadable: %v", v.ID, err)
			}
		}
		dst = append(dst, v)
	}
	return dst, rows.Err()
}

// Clear deletes every viewport row, the reset path used before any engine starts
func Clear(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM viewports`)
	if err != nil {
		return 0, fmt.Errorf("clear viewports: %w", err)
	}
	return res.RowsAffected()
}

// List returns the current viewport rows without registering
func List(ctx context.Context, db *sql.DB) ([]Viewport, error) {
	return listViewports(ctx, db, nil)
}
