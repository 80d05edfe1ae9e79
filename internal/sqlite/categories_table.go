// This file implements the categories table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

var _ types.Table = (*categoriesTable)(nil)

type categoriesTable struct {
	backend *Backend
}

// Get retrieves a category by ID.
func (ct *categoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	row := ct.backend.db.QueryRow(
		"SELECT "+categoryColumns+" FROM categories WHERE category_id = ?", id)
	cat, err := hydrateCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.NewStorageError(fmt.Sprintf("getting category %s", id), err)
	}
	return cat, nil
}

// Set creates or updates a category. With an empty id and no CategoryID a
// UUID v7 is generated and the category is inserted; otherwise the row with
// that id is inserted or has its name updated. CreatedAt is never changed
// by an update.
func (ct *categoriesTable) Set(id string, data any) (string, error) {
	cat, ok := data.(*types.Category)
	if !ok || cat == nil {
		return "", types.ErrInvalidData
	}
	if err := cat.Validate(); err != nil {
		return "", err
	}

	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return "", types.ErrCupboardDetached
	}

	if id == "" {
		id = cat.CategoryID
	}
	if id == "" {
		id = newUUID()
	}
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}

	err := ct.backend.withTx("saving category", func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO categories (category_id, name, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(category_id) DO UPDATE SET
				name = excluded.name`,
			id, cat.Name, formatTime(cat.CreatedAt))
		return types.NewStorageError("upserting category", err)
	})
	if err != nil {
		return "", err
	}

	cat.CategoryID = id
	ct.backend.log.WithFields(logrus.Fields{
		"category_id": id,
		"name":        cat.Name,
	}).Debug("category saved")
	return id, nil
}

// Delete removes a category and every item it owns in one transaction.
// Returns ErrNotFound if the category does not exist; nothing is deleted
// unless both steps succeed.
func (ct *categoriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return types.ErrCupboardDetached
	}

	var removedItems int64
	err := ct.backend.withTx("deleting category", func(tx *sql.Tx) error {
		if err := categoryExists(tx, id); err != nil {
			return err
		}
		res, err := tx.Exec("DELETE FROM items WHERE category_id = ?", id)
		if err != nil {
			return types.NewStorageError("deleting category items", err)
		}
		removedItems, _ = res.RowsAffected()
		if _, err := tx.Exec("DELETE FROM categories WHERE category_id = ?", id); err != nil {
			return types.NewStorageError("deleting category", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ct.backend.log.WithFields(logrus.Fields{
		"category_id": id,
		"items":       removedItems,
	}).Debug("category deleted")
	return nil
}

// Fetch queries categories matching the filter in insertion order.
// Recognized keys: name (string), limit and offset (int).
func (ct *categoriesTable) Fetch(filter types.Filter) ([]any, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	var conditions []string
	var args []any

	if v, ok := filter[types.FilterName]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "name = ?")
		args = append(args, s)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rowid ASC"

	limit, offset, err := pageBounds(filter)
	if err != nil {
		return nil, err
	}
	if limit > 0 || offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means no limit.
		if limit <= 0 {
			limit = -1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	rows, err := ct.backend.db.Query(query, args...)
	if err != nil {
		return nil, types.NewStorageError("fetching categories", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		cat, err := hydrateCategory(rows)
		if err != nil {
			return nil, types.NewStorageError("hydrating category", err)
		}
		results = append(results, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterating categories", err)
	}
	return results, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateCategory converts a row into a *types.Category.
func hydrateCategory(row rowScanner) (*types.Category, error) {
	var c types.Category
	var createdAt string
	if err := row.Scan(&c.CategoryID, &c.Name, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing category created_at: %w", err)
	}
	c.CreatedAt = t
	return &c, nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// categoryExists returns ErrNotFound unless the category row exists.
func categoryExists(q queryRower, id string) error {
	var one int
	err := q.QueryRow("SELECT 1 FROM categories WHERE category_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return types.NewStorageError("checking category", err)
	}
	return nil
}

// pageBounds reads the limit and offset filter keys.
func pageBounds(filter types.Filter) (limit, offset int, err error) {
	if v, ok := filter[types.FilterLimit]; ok {
		n, ok := toInt(v)
		if !ok {
			return 0, 0, types.ErrInvalidFilter
		}
		limit = n
	}
	if v, ok := filter[types.FilterOffset]; ok {
		n, ok := toInt(v)
		if !ok {
			return 0, 0, types.ErrInvalidFilter
		}
		if n > 0 {
			offset = n
		}
	}
	return limit, offset, nil
}
