package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wishlist/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestExportImportRoundtrip(t *testing.T) {
	src := setupBackend(t)
	cats := mustTable(t, src, types.TableCategories)
	items := mustTable(t, src, types.TableItems)

	books, err := cats.Set("", &types.Category{Name: "Books"})
	require.NoError(t, err)
	games, err := cats.Set("", &types.Category{Name: "Games"})
	require.NoError(t, err)
	_, err = items.Set("", &types.Item{CategoryID: books, Title: "Dune", Link: "https://example.com/dune"})
	require.NoError(t, err)
	_, err = items.Set("", &types.Item{CategoryID: games, Title: "Chess", Link: "https://example.com/chess"})
	require.NoError(t, err)

	exportDir := filepath.Join(t.TempDir(), "export")
	require.NoError(t, src.Export(exportDir))

	data, err := os.ReadFile(filepath.Join(exportDir, categoriesJSONL))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"name":"Books"`)
	assert.Contains(t, lines[1], `"name":"Games"`)

	dst := setupBackend(t)
	res, err := dst.Import(exportDir)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Categories: 2, Items: 2}, res)

	all, err := mustTable(t, dst, types.TableCategories).Fetch(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, books, all[0].(*types.Category).CategoryID)
	assert.Equal(t, "Games", all[1].(*types.Category).Name)

	got, err := mustTable(t, dst, types.TableItems).Fetch(types.Filter{types.FilterCategoryID: books})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/dune", got[0].(*types.Item).Link)
}

func TestImportSkipsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, categoriesJSONL, strings.Join([]string{
		`{"category_id":"c1","name":"Books","created_at":"2025-01-15T10:30:00Z","color":"blue"}`,
		`{"category_id":"c2","name":""}`,
		`{"name":"no id"}`,
		`garbage`,
	}, "\n")+"\n")
	writeFile(t, dir, itemsJSONL, strings.Join([]string{
		`{"item_id":"i1","category_id":"c1","title":"Dune","link":"https://example.com","rating":5}`,
		`{"item_id":"i2","category_id":"c1","title":"Bad link","link":"not a url"}`,
		`{"item_id":"i3","category_id":"missing","title":"Orphan","link":"https://example.com"}`,
		`{"item_id":"i4","category_id":"c1","title":"","link":"https://example.com"}`,
	}, "\n")+"\n")

	b := setupBackend(t)
	res, err := b.Import(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Categories)
	assert.Equal(t, 1, res.Items)
	assert.Equal(t, 6, res.Skipped)

	entity, err := mustTable(t, b, types.TableCategories).Get("c1")
	require.NoError(t, err)
	assert.Equal(t, 2025, entity.(*types.Category).CreatedAt.Year())

	_, err = mustTable(t, b, types.TableItems).Get("i3")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestImportMissingFilesIsEmpty(t *testing.T) {
	b := setupBackend(t)
	res, err := b.Import(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ImportResult{}, res)
}

func TestImportUpsertsExisting(t *testing.T) {
	b := setupBackend(t)
	cats := mustTable(t, b, types.TableCategories)
	_, err := cats.Set("c1", &types.Category{Name: "Old name"})
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, dir, categoriesJSONL, `{"category_id":"c1","name":"New name"}`+"\n")

	res, err := b.Import(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Categories)

	all, err := cats.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New name", all[0].(*types.Category).Name)
}

func TestExportImportDetached(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Export(t.TempDir()), types.ErrCupboardDetached)
	_, err := b.Import(t.TempDir())
	assert.ErrorIs(t, err, types.ErrCupboardDetached)
}
