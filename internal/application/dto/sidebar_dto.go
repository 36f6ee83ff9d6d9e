package dto

import "github.com/jhoicas/tenant-admin/internal/domain/entity"

// MenuCategoryResponse grupo del catálogo en GET /menu-catalog.
type MenuCategoryResponse struct {
	Category string            `json:"category"`
	Label    string            `json:"label"`
	Items    []entity.MenuItem `json:"items"`
}

// MenuCatalogResponse salida de GET /menu-catalog.
type MenuCatalogResponse struct {
	Success    bool                   `json:"success"`
	Categories []MenuCategoryResponse `json:"categories"`
}

// SidebarSaveInput escritura de la configuración: cuerpo crudo tal como llegó.
type SidebarSaveInput struct {
	Body       map[string]any
	UserID     string // vacío en la ruta compartida
	AuthHeader string
}
