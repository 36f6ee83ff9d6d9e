package ports

import "context"

// SidebarPartner puerto hacia la aplicación asociada dueña de la configuración del sidebar.
// Los cuerpos se tratan como objetos JSON opacos; authHeader se reenvía tal cual (vacío = sin cabecera).
type SidebarPartner interface {
	GetSidebarConfig(ctx context.Context, authHeader string) (map[string]any, error)
	PostSidebarConfig(ctx context.Context, authHeader string, body map[string]any) (map[string]any, error)
}
