// This file implements JSONL import into the database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

// ImportResult counts what Import wrote and what it skipped.
type ImportResult struct {
	Categories int
	Items      int
	Skipped    int
}

// Import reads categories.jsonl and items.jsonl from dir and upserts their
// records in one transaction: either every accepted record is written or
// none is. A missing file counts as empty. Malformed lines, records that
// fail validation, and items whose category does not exist are skipped.
// Unknown fields are ignored.
func (b *Backend) Import(dir string) (ImportResult, error) {
	var res ImportResult

	cats, skipped, err := readJSONLIfExists(filepath.Join(dir, categoriesJSONL))
	if err != nil {
		return res, err
	}
	res.Skipped += skipped
	items, skipped, err := readJSONLIfExists(filepath.Join(dir, itemsJSONL))
	if err != nil {
		return res, err
	}
	res.Skipped += skipped

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return res, types.ErrCupboardDetached
	}

	now := time.Now()
	err = b.withTx("importing JSONL", func(tx *sql.Tx) error {
		for _, rec := range cats {
			if insertCategoryRecord(tx, rec, now) {
				res.Categories++
			} else {
				res.Skipped++
			}
		}
		for _, rec := range items {
			if insertItemRecord(tx, rec, now) {
				res.Items++
			} else {
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	b.log.WithFields(logrus.Fields{
		"dir":        dir,
		"categories": res.Categories,
		"items":      res.Items,
		"skipped":    res.Skipped,
	}).Info("import finished")
	return res, nil
}

func readJSONLIfExists(path string) ([]json.RawMessage, int, error) {
	records, skipped, err := readJSONL(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	return records, skipped, err
}

// insertCategoryRecord upserts one category record and reports whether it
// was accepted.
func insertCategoryRecord(tx *sql.Tx, rec json.RawMessage, now time.Time) bool {
	var r categoryJSON
	if err := json.Unmarshal(rec, &r); err != nil {
		return false
	}
	cat := types.Category{CategoryID: r.CategoryID, Name: r.Name}
	if cat.CategoryID == "" || cat.Validate() != nil {
		return false
	}
	_, err := tx.Exec(`
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?)
		ON CONFLICT(category_id) DO UPDATE SET
			name = excluded.name`,
		r.CategoryID, r.Name, importTime(r.CreatedAt, now))
	return err == nil
}

// insertItemRecord upserts one item record and reports whether it was
// accepted. The foreign key rejects items of unknown categories.
func insertItemRecord(tx *sql.Tx, rec json.RawMessage, now time.Time) bool {
	var r itemJSON
	if err := json.Unmarshal(rec, &r); err != nil {
		return false
	}
	item := types.Item{ItemID: r.ItemID, CategoryID: r.CategoryID, Title: r.Title, Link: r.Link}
	if item.ItemID == "" || item.CategoryID == "" || item.Validate() != nil {
		return false
	}
	_, err := tx.Exec(`
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			category_id = excluded.category_id,
			title = excluded.title,
			link = excluded.link`,
		r.ItemID, r.CategoryID, r.Title, r.Link, importTime(r.CreatedAt, now))
	return err == nil
}

// importTime normalizes a record timestamp, substituting now when it is
// missing or unparseable.
func importTime(s string, now time.Time) string {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return formatTime(t)
	}
	return formatTime(now)
}

// Export writes every category and item to categories.jsonl and
// items.jsonl in dir, in insertion order. Each file is replaced atomically.
func (b *Backend) Export(dir string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrCupboardDetached
	}

	cats, err := exportRecords(b.db, "SELECT "+categoryColumns+" FROM categories ORDER BY rowid ASC",
		func(rows *sql.Rows) (any, error) {
			var r categoryJSON
			err := rows.Scan(&r.CategoryID, &r.Name, &r.CreatedAt)
			return r, err
		})
	if err != nil {
		return err
	}
	items, err := exportRecords(b.db, "SELECT "+itemColumns+" FROM items ORDER BY rowid ASC",
		func(rows *sql.Rows) (any, error) {
			var r itemJSON
			err := rows.Scan(&r.ItemID, &r.CategoryID, &r.Title, &r.Link, &r.CreatedAt)
			return r, err
		})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, categoriesJSONL), cats); err != nil {
		return fmt.Errorf("writing %s: %w", categoriesJSONL, err)
	}
	if err := writeJSONL(filepath.Join(dir, itemsJSONL), items); err != nil {
		return fmt.Errorf("writing %s: %w", itemsJSONL, err)
	}

	b.log.WithFields(logrus.Fields{
		"dir":        dir,
		"categories": len(cats),
		"items":      len(items),
	}).Info("export finished")
	return nil
}

func exportRecords(db *sql.DB, query string, scan func(*sql.Rows) (any, error)) ([]json.RawMessage, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, types.NewStorageError("querying for export", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, types.NewStorageError("scanning for export", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling export record: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterating for export", err)
	}
	return records, nil
}
