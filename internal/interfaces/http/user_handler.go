package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// UserHandler maneja las cuentas de usuario.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserListResponse{Success: true, Users: users})
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "uid"
// @Success      200  {object}  dto.UserEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	u, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserEnvelope{Success: true, User: u})
}

// Create godoc
// @Summary      Crear usuario o alta masiva
// @Description  Con "users" en el cuerpo crea una cuenta por fila con contraseña generada.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateUserRequest  true  "alta individual o masiva"
// @Success      201   {object}  dto.CreateUserResponse
// @Success      200   {object}  dto.BulkCreateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.IsBulk() {
		out, err := h.uc.BulkCreate(c.UserContext(), dto.BulkCreateRequest{
			CompanyName:      in.CompanyName,
			SubscriptionType: in.SubscriptionType,
			Users:            in.Users,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "uid"
// @Param        body  body      dto.UpdateUserRequest  true  "campos a modificar"
// @Success      200   {object}  dto.UserEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	u, err := h.uc.Update(c.UserContext(), c.Params("id"), toPatch(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserEnvelope{Success: true, Message: "User updated successfully", User: u})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "uid"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "User deleted successfully"})
}

func toPatch(in dto.UpdateUserRequest) entity.UserPatch {
	p := entity.UserPatch{
		Role:        in.Role,
		Status:      in.Status,
		Department:  in.Department,
		Position:    in.Position,
		DisplayName: in.DisplayName,
		CompanyName: in.CompanyName,
	}
	if in.SubscriptionType.Set {
		v := in.SubscriptionType.Value
		p.SubscriptionType = &v
	}
	return p
}
