package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/menu"
)

func item(id, category string) entity.MenuItem {
	return entity.MenuItem{ID: id, Name: id, Category: category}
}

func ids(items []entity.MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func categories(groups []menu.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Category)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_VeinteEntradasConIDsUnicos(t *testing.T) {
	items := menu.Catalog()
	require.Len(t, items, 20)

	seen := make(map[string]bool)
	for _, it := range items {
		assert.False(t, seen[it.ID], "id duplicado %s", it.ID)
		seen[it.ID] = true
		assert.Contains(t, menu.CategoryOrder, it.Category)
	}
}

func TestCatalog_DevuelveCopia(t *testing.T) {
	items := menu.Catalog()
	items[0].Name = "cambiado"

	again := menu.Catalog()
	assert.NotEqual(t, "cambiado", again[0].Name)
}

func TestLookup(t *testing.T) {
	it, ok := menu.Lookup("calendar")
	require.True(t, ok)
	assert.Equal(t, "/calendar", it.Href)
	assert.Equal(t, menu.CategoryOther, it.Category)

	_, ok = menu.Lookup("no-existe")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agrupación
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupByCategory_OrdenDeAparicion(t *testing.T) {
	groups := menu.GroupByCategory([]entity.MenuItem{
		item("r", menu.CategoryOther),
		item("s1", menu.CategorySales),
		item("c", menu.CategoryOther),
		item("s2", menu.CategorySales),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, []string{menu.CategoryOther, menu.CategorySales}, categories(groups))
	assert.Equal(t, []string{"r", "c"}, ids(groups[0].Items))
	assert.Equal(t, []string{"s1", "s2"}, ids(groups[1].Items))
	assert.Equal(t, menu.CategoryNames[menu.CategoryOther], groups[0].Label)
}

func TestGroupByCategoryOrdered_SigueCategoryOrder(t *testing.T) {
	groups := menu.GroupByCategoryOrdered([]entity.MenuItem{
		item("x", menu.CategoryOther),
		item("y", menu.CategorySales),
	})

	assert.Equal(t, []string{menu.CategorySales, menu.CategoryOther}, categories(groups))
}

func TestGroupByCategoryOrdered_CategoriasDesconocidasAlFinal(t *testing.T) {
	groups := menu.GroupByCategoryOrdered([]entity.MenuItem{
		item("z", "zeta"),
		item("a", "alpha"),
		item("i", menu.CategoryInventory),
	})

	assert.Equal(t, []string{menu.CategoryInventory, "zeta", "alpha"}, categories(groups))
	assert.Equal(t, "zeta", groups[1].Label)
}

func TestGroupByCategoryOrdered_CatalogoCompleto(t *testing.T) {
	groups := menu.GroupByCategoryOrdered(menu.Catalog())

	assert.Equal(t, menu.CategoryOrder, categories(groups))
	total := 0
	for _, g := range groups {
		assert.NotEmpty(t, g.Items)
		total += len(g.Items)
	}
	assert.Equal(t, 20, total)
}

func TestGroupByCategory_Vacio(t *testing.T) {
	assert.Empty(t, menu.GroupByCategory(nil))
	assert.Empty(t, menu.GroupByCategoryOrdered(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Toggle
// ──────────────────────────────────────────────────────────────────────────────

func TestToggle_AgregaYQuita(t *testing.T) {
	enabled := []string{"a", "b"}

	added := menu.Toggle(enabled, "c")
	assert.Equal(t, []string{"a", "b", "c"}, added)
	assert.Equal(t, []string{"a", "b"}, enabled, "la entrada no se modifica")

	removed := menu.Toggle(added, "a")
	assert.Equal(t, []string{"b", "c"}, removed)
}

func TestToggle_DobleToggleRestauraElConjunto(t *testing.T) {
	enabled := []string{"calendar", "reports", "unknown-id"}

	for _, id := range []string{"calendar", "analytics", "unknown-id"} {
		back := menu.Toggle(menu.Toggle(enabled, id), id)
		assert.ElementsMatch(t, enabled, back, "id=%s", id)
	}
}
