// Package wishlist provides Store, the typed persistence API for wishlist
// categories and items. Store works over any types.Cupboard; Open wires it
// to the SQLite backend.
//
// Results are snapshots taken at call time. Callers that display them
// re-query after each mutation.
package wishlist

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/wishlist/internal/sqlite"
	"github.com/mesh-intelligence/wishlist/pkg/types"
)

// Store exposes create, read, update and delete operations on categories
// and items. Every mutation is one atomic write. Errors match
// types.ErrValidation, types.ErrNotFound or types.ErrStorage.
type Store struct {
	cupboard types.Cupboard
}

// New returns a Store over an attached cupboard.
func New(cupboard types.Cupboard) *Store {
	return &Store{cupboard: cupboard}
}

// Open attaches a SQLite backend with config and returns a Store over it
// together with the backend, which the caller must Detach.
func Open(config types.Config, log logrus.FieldLogger) (*Store, *sqlite.Backend, error) {
	backend := sqlite.NewBackend(sqlite.WithLogger(log))
	if err := backend.Attach(config); err != nil {
		return nil, nil, fmt.Errorf("attach backend: %w", err)
	}
	return New(backend), backend, nil
}

func (s *Store) table(name string) (types.Table, error) {
	return s.cupboard.GetTable(name)
}

// ListCategories returns every category in insertion order.
func (s *Store) ListCategories() ([]*types.Category, error) {
	tbl, err := s.table(types.TableCategories)
	if err != nil {
		return nil, err
	}
	entities, err := tbl.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return asCategories(entities)
}

// AddCategory persists a new category. Returns types.ErrInvalidName for a
// blank name.
func (s *Store) AddCategory(name string) (*types.Category, error) {
	tbl, err := s.table(types.TableCategories)
	if err != nil {
		return nil, err
	}
	cat := &types.Category{Name: name}
	if _, err := tbl.Set("", cat); err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}
	return cat, nil
}

// GetCategory returns the category with id.
func (s *Store) GetCategory(id string) (*types.Category, error) {
	tbl, err := s.table(types.TableCategories)
	if err != nil {
		return nil, err
	}
	entity, err := tbl.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	cat, ok := entity.(*types.Category)
	if !ok {
		return nil, fmt.Errorf("get category: %w", types.ErrInvalidData)
	}
	return cat, nil
}

// RenameCategory changes the name of an existing category.
func (s *Store) RenameCategory(id, name string) (*types.Category, error) {
	cat, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if err := cat.Rename(name); err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}
	tbl, err := s.table(types.TableCategories)
	if err != nil {
		return nil, err
	}
	if _, err := tbl.Set(id, cat); err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return cat, nil
}

// DeleteCategory deletes the category and all of its items atomically.
func (s *Store) DeleteCategory(id string) error {
	tbl, err := s.table(types.TableCategories)
	if err != nil {
		return err
	}
	if err := tbl.Delete(id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListItems returns the items of a category sorted by title, ignoring
// case. A non-empty filter keeps only titles containing it, ignoring case
// and diacritics. Returns types.ErrNotFound if the category does not exist.
func (s *Store) ListItems(categoryID, filter string) ([]*types.Item, error) {
	tbl, err := s.table(types.TableItems)
	if err != nil {
		return nil, err
	}
	f := types.Filter{types.FilterCategoryID: categoryID}
	if filter != "" {
		f[types.FilterTitleContains] = filter
	}
	entities, err := tbl.Fetch(f)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return asItems(entities)
}

// AddItem appends a new item to a category. Returns types.ErrInvalidTitle
// or types.ErrInvalidLink for bad input and types.ErrNotFound for a
// missing category; nothing is written on error.
func (s *Store) AddItem(categoryID, title, link string) (*types.Item, error) {
	tbl, err := s.table(types.TableItems)
	if err != nil {
		return nil, err
	}
	item := &types.Item{CategoryID: categoryID, Title: title, Link: link}
	if _, err := tbl.Set("", item); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return item, nil
}

// GetItem returns the item with id.
func (s *Store) GetItem(id string) (*types.Item, error) {
	tbl, err := s.table(types.TableItems)
	if err != nil {
		return nil, err
	}
	entity, err := tbl.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	item, ok := entity.(*types.Item)
	if !ok {
		return nil, fmt.Errorf("get item: %w", types.ErrInvalidData)
	}
	return item, nil
}

// UpdateItem saves changes to an existing item, validated like AddItem.
func (s *Store) UpdateItem(item *types.Item) error {
	if item == nil || item.ItemID == "" {
		return fmt.Errorf("update item: %w", types.ErrInvalidID)
	}
	if _, err := s.GetItem(item.ItemID); err != nil {
		return err
	}
	tbl, err := s.table(types.TableItems)
	if err != nil {
		return err
	}
	if _, err := tbl.Set(item.ItemID, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// DeleteItem removes an item from its category.
func (s *Store) DeleteItem(id string) error {
	tbl, err := s.table(types.TableItems)
	if err != nil {
		return err
	}
	if err := tbl.Delete(id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func asCategories(entities []any) ([]*types.Category, error) {
	out := make([]*types.Category, 0, len(entities))
	for _, e := range entities {
		c, ok := e.(*types.Category)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, c)
	}
	return out, nil
}

func asItems(entities []any) ([]*types.Item, error) {
	out := make([]*types.Item, 0, len(entities))
	for _, e := range entities {
		i, ok := e.(*types.Item)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, i)
	}
	return out, nil
}
