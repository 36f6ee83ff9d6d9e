package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
)

// SidebarHandler proxy de la configuración del sidebar.
type SidebarHandler struct {
	uc *usecase.SidebarUseCase
}

// NewSidebarHandler construye el handler.
func NewSidebarHandler(uc *usecase.SidebarUseCase) *SidebarHandler {
	return &SidebarHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración del sidebar
// @Description  Reenvía la cabecera Authorization si es Bearer. Añade version.
// @Tags         sidebar
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/sidebar-config [get]
func (h *SidebarHandler) Get(c *fiber.Ctx) error {
	return h.get(c, "", c.Get(fiber.HeaderAuthorization))
}

// Save godoc
// @Summary      Guardar configuración del sidebar
// @Description  Cuerpo {enabledMenuItems: string[], version?: number}. Con version, debe ser la leída.
// @Tags         sidebar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/sidebar-config [post]
func (h *SidebarHandler) Save(c *fiber.Ctx) error {
	return h.save(c, "")
}

// GetForUser godoc
// @Summary      Configuración del sidebar vista por un usuario
// @Tags         sidebar
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "uid"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/users/{id}/sidebar-config [get]
func (h *SidebarHandler) GetForUser(c *fiber.Ctx) error {
	return h.get(c, c.Params("id"), "")
}

// SaveForUser godoc
// @Summary      Guardar configuración del sidebar desde la ficha de un usuario
// @Tags         sidebar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "uid"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/sidebar-config [post]
func (h *SidebarHandler) SaveForUser(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

// get consulta al partner; la vista por usuario no reenvía credenciales.
func (h *SidebarHandler) get(c *fiber.Ctx, userID, authHeader string) error {
	cfg, err := h.uc.Get(c.UserContext(), authHeader, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cfg)
}

func (h *SidebarHandler) save(c *fiber.Ctx, userID string) error {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil || body == nil {
		return invalidBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), dto.SidebarSaveInput{
		Body:       body,
		UserID:     userID,
		AuthHeader: c.Get(fiber.HeaderAuthorization),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
