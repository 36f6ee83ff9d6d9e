package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/auth"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC    *usecase.UserUseCase
	SidebarUC *usecase.SidebarUseCase
	OrphanUC  *usecase.OrphanUseCase
	AccessUC  *usecase.AccessUseCase
	AuthUC    *auth.AuthUseCase // nil salvo con el proveedor de identidad local
	Verifier  tokenVerifier
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/admin")

	// Públicas
	sidebarHandler := NewSidebarHandler(deps.SidebarUC)
	api.Get("/sidebar-config", sidebarHandler.Get)
	api.Get("/menu-catalog", MenuCatalog)
	if deps.AuthUC != nil {
		api.Post("/auth/login", NewAuthHandler(deps.AuthUC).Login)
	}

	// Rutas protegidas (requieren Bearer Token); las mutaciones además rol admin.
	authn := AuthMiddleware(deps.Verifier, deps.AccessUC)
	admin := RequireAdmin(deps.AccessUC, deps.Log)

	api.Get("/session", authn, NewSessionHandler(deps.AccessUC).Get)
	api.Post("/sidebar-config", authn, admin, sidebarHandler.Save)

	users := api.Group("/users", authn)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)
	users.Get("/:id/sidebar-config", sidebarHandler.GetForUser)
	users.Post("/:id/sidebar-config", admin, sidebarHandler.SaveForUser)

	orphans := api.Group("/orphans", authn, admin)
	orphanHandler := NewOrphanHandler(deps.OrphanUC)
	orphans.Get("/", orphanHandler.List)
	orphans.Post("/:uid/reconcile", orphanHandler.Reconcile)
}
