package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
)

// OrphanHandler registro de identidades huérfanas.
type OrphanHandler struct {
	uc *usecase.OrphanUseCase
}

// NewOrphanHandler construye el handler.
func NewOrphanHandler(uc *usecase.OrphanUseCase) *OrphanHandler {
	return &OrphanHandler{uc: uc}
}

// List godoc
// @Summary      Listar huérfanos pendientes
// @Tags         orphans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.OrphanListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/orphans [get]
func (h *OrphanHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrphanListResponse{Success: true, Orphans: list})
}

// Reconcile godoc
// @Summary      Reintentar la limpieza de un huérfano
// @Tags         orphans
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      string  true  "uid"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orphans/{uid}/reconcile [post]
func (h *OrphanHandler) Reconcile(c *fiber.Ctx) error {
	if err := h.uc.Reconcile(c.UserContext(), c.Params("uid")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Orphan reconciled"})
}
