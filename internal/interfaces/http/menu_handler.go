package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/domain/menu"
)

// MenuCatalog godoc
// @Summary      Catálogo de funcionalidades agrupado por categoría
// @Tags         sidebar
// @Produce      json
// @Success      200  {object}  dto.MenuCatalogResponse
// @Router       /api/admin/menu-catalog [get]
func MenuCatalog(c *fiber.Ctx) error {
	groups := menu.GroupByCategoryOrdered(menu.Catalog())
	out := dto.MenuCatalogResponse{Success: true, Categories: make([]dto.MenuCategoryResponse, 0, len(groups))}
	for _, g := range groups {
		out.Categories = append(out.Categories, dto.MenuCategoryResponse{
			Category: g.Category,
			Label:    g.Label,
			Items:    g.Items,
		})
	}
	return c.JSON(out)
}
