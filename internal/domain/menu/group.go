package menu

import (
	"slices"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// Group funcionalidades de una misma categoría.
type Group struct {
	Category string
	Label    string
	Items    []entity.MenuItem
}

// GroupByCategory agrupa en el orden en que aparece cada categoría; dentro de cada
// grupo se conserva el orden de entrada.
func GroupByCategory(items []entity.MenuItem) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, Group{Category: item.Category, Label: label(item.Category)})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// GroupByCategoryOrdered agrupa siguiendo CategoryOrder. Las categorías desconocidas
// van al final en orden de aparición. No se emiten grupos vacíos.
func GroupByCategoryOrdered(items []entity.MenuItem) []Group {
	groups := GroupByCategory(items)
	byCategory := make(map[string]Group, len(groups))
	for _, g := range groups {
		byCategory[g.Category] = g
	}

	out := make([]Group, 0, len(groups))
	for _, category := range CategoryOrder {
		if g, ok := byCategory[category]; ok {
			out = append(out, g)
		}
	}
	for _, g := range groups {
		if !slices.Contains(CategoryOrder, g.Category) {
			out = append(out, g)
		}
	}
	return out
}

// Toggle quita id de enabled si está presente o lo agrega al final si no lo está.
// Devuelve un slice nuevo.
func Toggle(enabled []string, id string) []string {
	if slices.Contains(enabled, id) {
		out := make([]string, 0, len(enabled))
		for _, e := range enabled {
			if e != id {
				out = append(out, e)
			}
		}
		return out
	}
	out := make([]string, 0, len(enabled)+1)
	out = append(out, enabled...)
	return append(out, id)
}

func label(category string) string {
	if l, ok := CategoryNames[category]; ok {
		return l
	}
	return category
}
