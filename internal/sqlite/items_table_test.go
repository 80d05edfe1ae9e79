package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

// newCategory creates a category and returns its ID.
func newCategory(t *testing.T, b *Backend, name string) string {
	t.Helper()
	id, err := mustTable(t, b, types.TableCategories).Set("", &types.Category{Name: name})
	require.NoError(t, err)
	return id
}

// itemTitles extracts titles from a Fetch result.
func itemTitles(t *testing.T, entities []any) []string {
	t.Helper()
	titles := make([]string, 0, len(entities))
	for _, e := range entities {
		item, ok := e.(*types.Item)
		require.True(t, ok, "expected *types.Item, got %T", e)
		titles = append(titles, item.Title)
	}
	return titles
}

func TestItemsTableCRUD(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend, catID string)
	}{
		{
			name: "create and get",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)

				item := &types.Item{CategoryID: catID, Title: "Dune", Link: "https://example.com"}
				id, err := items.Set("", item)
				require.NoError(t, err)
				assert.Equal(t, id, item.ItemID)

				entity, err := items.Get(id)
				require.NoError(t, err)
				got := entity.(*types.Item)
				assert.Equal(t, catID, got.CategoryID)
				assert.Equal(t, "Dune", got.Title)
				assert.Equal(t, "https://example.com", got.Link)
				assert.True(t, item.CreatedAt.Equal(got.CreatedAt))
			},
		},
		{
			name: "invalid link is rejected and nothing persists",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)

				_, err := items.Set("", &types.Item{CategoryID: catID, Title: "Dune", Link: "not a url"})
				assert.ErrorIs(t, err, types.ErrInvalidLink)
				_, err = items.Set("", &types.Item{CategoryID: catID, Title: "Dune", Link: "gopher://example.com"})
				assert.ErrorIs(t, err, types.ErrInvalidLink)

				got, err := items.Fetch(types.Filter{types.FilterCategoryID: catID})
				require.NoError(t, err)
				assert.Empty(t, got)
			},
		},
		{
			name: "empty title is rejected and nothing persists",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)

				_, err := items.Set("", &types.Item{CategoryID: catID, Title: "", Link: "https://example.com"})
				assert.ErrorIs(t, err, types.ErrInvalidTitle)

				got, err := items.Fetch(types.Filter{types.FilterCategoryID: catID})
				require.NoError(t, err)
				assert.Empty(t, got)
			},
		},
		{
			name: "missing category is ErrNotFound",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)

				_, err := items.Set("", &types.Item{CategoryID: "nope", Title: "Dune", Link: "https://example.com"})
				assert.ErrorIs(t, err, types.ErrNotFound)
				_, err = items.Set("", &types.Item{Title: "Dune", Link: "https://example.com"})
				assert.ErrorIs(t, err, types.ErrInvalidID)

				all, err := items.Fetch(nil)
				require.NoError(t, err)
				assert.Empty(t, all)
			},
		},
		{
			name: "update changes title, link and category",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)
				other := newCategory(t, b, "Other")

				id, err := items.Set("", &types.Item{CategoryID: catID, Title: "Dune", Link: "https://example.com"})
				require.NoError(t, err)

				_, err = items.Set(id, &types.Item{CategoryID: other, Title: "Dune Messiah", Link: "ftp://example.com/dm"})
				require.NoError(t, err)

				entity, err := items.Get(id)
				require.NoError(t, err)
				got := entity.(*types.Item)
				assert.Equal(t, other, got.CategoryID)
				assert.Equal(t, "Dune Messiah", got.Title)
				assert.Equal(t, "ftp://example.com/dm", got.Link)

				inFirst, err := items.Fetch(types.Filter{types.FilterCategoryID: catID})
				require.NoError(t, err)
				assert.Empty(t, inFirst)
			},
		},
		{
			name: "delete removes the item",
			check: func(t *testing.T, b *Backend, catID string) {
				items := mustTable(t, b, types.TableItems)

				id, err := items.Set("", &types.Item{CategoryID: catID, Title: "Dune", Link: "https://example.com"})
				require.NoError(t, err)
				keep, err := items.Set("", &types.Item{CategoryID: catID, Title: "Emma", Link: "https://example.com"})
				require.NoError(t, err)

				require.NoError(t, items.Delete(id))
				_, err = items.Get(id)
				assert.ErrorIs(t, err, types.ErrNotFound)
				assert.ErrorIs(t, items.Delete(id), types.ErrNotFound)

				got, err := items.Fetch(types.Filter{types.FilterCategoryID: catID})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, keep, got[0].(*types.Item).ItemID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b, newCategory(t, b, "Books"))
		})
	}
}

func TestItemsTableFetch(t *testing.T) {
	b := setupBackend(t)
	items := mustTable(t, b, types.TableItems)
	books := newCategory(t, b, "Books")
	food := newCategory(t, b, "Food")

	for _, title := range []string{"zebra guide", "Café Culture", "apple pie", "Banana Bread", "cafe racer", "Apple Watch"} {
		_, err := items.Set("", &types.Item{CategoryID: books, Title: title, Link: "https://example.com"})
		require.NoError(t, err)
	}
	_, err := items.Set("", &types.Item{CategoryID: food, Title: "Cafe au lait", Link: "https://example.com"})
	require.NoError(t, err)

	t.Run("sorted by title ignoring case", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: books})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"apple pie", "Apple Watch", "Banana Bread", "Café Culture", "cafe racer", "zebra guide"},
			itemTitles(t, got))
	})

	t.Run("filter is case and diacritic insensitive", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterTitleContains: "CAFÉ"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Café Culture", "cafe racer"}, itemTitles(t, got))

		got, err = items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterTitleContains: "apple"})
		require.NoError(t, err)
		assert.Equal(t, []string{"apple pie", "Apple Watch"}, itemTitles(t, got))
	})

	t.Run("empty filter falls back to full sorted list", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterTitleContains: ""})
		require.NoError(t, err)
		assert.Len(t, got, 6)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterTitleContains: "kiwi"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("scoped to the category", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: food})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cafe au lait"}, itemTitles(t, got))
	})

	t.Run("without category returns all items", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterTitleContains: "cafe"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cafe au lait", "Café Culture", "cafe racer"}, itemTitles(t, got))
	})

	t.Run("limit and offset apply after sorting", func(t *testing.T) {
		got, err := items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterLimit: 2, types.FilterOffset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple Watch", "Banana Bread"}, itemTitles(t, got))

		got, err = items.Fetch(types.Filter{types.FilterCategoryID: books, types.FilterOffset: 10})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown category is ErrNotFound", func(t *testing.T) {
		_, err := items.Fetch(types.Filter{types.FilterCategoryID: "missing"})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("invalid filter types", func(t *testing.T) {
		_, err := items.Fetch(types.Filter{types.FilterCategoryID: 7})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
		_, err = items.Fetch(types.Filter{types.FilterTitleContains: []string{"a"}})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
	})
}
