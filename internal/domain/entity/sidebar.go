package entity

// SidebarScopeGlobal es la única configuración de sidebar existente: las rutas por
// usuario leen y escriben la misma.
const SidebarScopeGlobal = "global"

// MenuItem entrada del catálogo de funcionalidades activables.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Href        string `json:"href"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

// SidebarUpdate escritura de la configuración compartida.
type SidebarUpdate struct {
	EnabledMenuItems []string
	UserID           string // vacío en la ruta compartida
	Version          int64  // versión leída por el escritor
	Versioned        bool   // false = escritura sin comprobación de versión
	AuthHeader       string // se reenvía al partner
}
