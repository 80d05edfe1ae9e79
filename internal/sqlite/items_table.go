// This file implements the items table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/wishlist/internal/textmatch"
	"github.com/mesh-intelligence/wishlist/pkg/types"
)

var _ types.Table = (*itemsTable)(nil)

type itemsTable struct {
	backend *Backend
}

// Get retrieves an item by ID.
func (it *itemsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	it.backend.mu.RLock()
	defer it.backend.mu.RUnlock()
	if !it.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	row := it.backend.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE item_id = ?", id)
	item, err := hydrateItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.NewStorageError(fmt.Sprintf("getting item %s", id), err)
	}
	return item, nil
}

// Set creates or updates an item. The title and link are validated before
// anything is written, and the owning category must exist (ErrNotFound
// otherwise). An update may move the item to another category.
func (it *itemsTable) Set(id string, data any) (string, error) {
	item, ok := data.(*types.Item)
	if !ok || item == nil {
		return "", types.ErrInvalidData
	}
	if err := item.Validate(); err != nil {
		return "", err
	}
	if item.CategoryID == "" {
		return "", types.ErrInvalidID
	}

	it.backend.mu.Lock()
	defer it.backend.mu.Unlock()
	if !it.backend.attached {
		return "", types.ErrCupboardDetached
	}

	if id == "" {
		id = item.ItemID
	}
	if id == "" {
		id = newUUID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	err := it.backend.withTx("saving item", func(tx *sql.Tx) error {
		if err := categoryExists(tx, item.CategoryID); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO items (item_id, category_id, title, link, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(item_id) DO UPDATE SET
				category_id = excluded.category_id,
				title = excluded.title,
				link = excluded.link`,
			id, item.CategoryID, item.Title, item.Link, formatTime(item.CreatedAt))
		return types.NewStorageError("upserting item", err)
	})
	if err != nil {
		return "", err
	}

	item.ItemID = id
	it.backend.log.WithFields(logrus.Fields{
		"item_id":     id,
		"category_id": item.CategoryID,
	}).Debug("item saved")
	return id, nil
}

// Delete removes an item by ID. Returns ErrNotFound if it does not exist.
func (it *itemsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	it.backend.mu.Lock()
	defer it.backend.mu.Unlock()
	if !it.backend.attached {
		return types.ErrCupboardDetached
	}

	err := it.backend.withTx("deleting item", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM items WHERE item_id = ?", id)
		if err != nil {
			return types.NewStorageError("deleting item", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return types.NewStorageError("deleting item", err)
		}
		if n == 0 {
			return types.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	it.backend.log.WithField("item_id", id).Debug("item deleted")
	return nil
}

// Fetch returns items sorted by title with the backend's collation,
// ignoring case; items with equal titles keep insertion order.
// Recognized keys: category_id (string; ErrNotFound if the category does
// not exist), title_contains (string; case and diacritic insensitive),
// limit and offset (int, applied after sorting).
func (it *itemsTable) Fetch(filter types.Filter) ([]any, error) {
	var categoryID, contains string
	var byCategory bool

	if v, ok := filter[types.FilterCategoryID]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		categoryID, byCategory = s, true
	}
	if v, ok := filter[types.FilterTitleContains]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		contains = s
	}
	limit, offset, err := pageBounds(filter)
	if err != nil {
		return nil, err
	}

	it.backend.mu.RLock()
	defer it.backend.mu.RUnlock()
	if !it.backend.attached {
		return nil, types.ErrCupboardDetached
	}

	query := "SELECT " + itemColumns + " FROM items"
	var args []any
	if byCategory {
		if err := categoryExists(it.backend.db, categoryID); err != nil {
			return nil, err
		}
		query += " WHERE category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY rowid ASC"

	rows, err := it.backend.db.Query(query, args...)
	if err != nil {
		return nil, types.NewStorageError("fetching items", err)
	}
	defer rows.Close()

	var items []*types.Item
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, types.NewStorageError("hydrating item", err)
		}
		if !textmatch.Contains(item.Title, contains) {
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterating items", err)
	}

	it.backend.sorter.SortStable(len(items),
		func(i int) string { return items[i].Title },
		func(i, j int) { items[i], items[j] = items[j], items[i] })

	items = page(items, limit, offset)
	results := make([]any, len(items))
	for i, item := range items {
		results[i] = item
	}
	return results, nil
}

// hydrateItem converts a row into a *types.Item.
func hydrateItem(row rowScanner) (*types.Item, error) {
	var i types.Item
	var createdAt string
	if err := row.Scan(&i.ItemID, &i.CategoryID, &i.Title, &i.Link, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing item created_at: %w", err)
	}
	i.CreatedAt = t
	return &i, nil
}

// page applies offset then limit to a sorted slice. A non-positive limit
// means no limit.
func page[T any](s []T, limit, offset int) []T {
	if offset >= len(s) {
		return s[:0]
	}
	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}
