package repository

import "context"

// SidebarVersionRepository contador de versión de la configuración del sidebar.
type SidebarVersionRepository interface {
	// Current devuelve la versión vigente del scope (0 si nunca se escribió).
	Current(ctx context.Context, scope string) (int64, error)
	// Advance incrementa la versión solo si sigue siendo expected (compare-and-set).
	// Devuelve domain.ErrConflict si otra escritura la adelantó.
	Advance(ctx context.Context, scope string, expected int64) (int64, error)
}
