package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// SessionHandler describe al llamador verificado.
type SessionHandler struct {
	uc *usecase.AccessUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *usecase.AccessUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Get godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/admin/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Session(c.UserContext(), entity.Identity{UID: GetUID(c), Email: GetEmail(c)})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
