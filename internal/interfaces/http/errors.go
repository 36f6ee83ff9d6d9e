package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain"
)

// errorResponse traduce un error de dominio a estado HTTP y cuerpo.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		inputErr      *domain.InputError
		validationErr *domain.ValidationError
		upstreamErr   *domain.UpstreamError
	)
	switch {
	case errors.As(err, &inputErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Error: inputErr.Message}
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Error:   validationErr.Error(),
			Details: validationErr.Errors,
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Error: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "Invalid or expired token"}
	case errors.Is(err, domain.ErrEmailNotAllowed):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "EMAIL_NOT_ALLOWED", Error: "Email is not allowed"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Error: "Access denied"}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Error: "User not found"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Error: "Not found"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_EXISTS", Error: usecase.ClientMessage(err)}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:  "VERSION_CONFLICT",
			Error: "Sidebar config was changed by someone else; reload and try again",
		}
	case errors.Is(err, domain.ErrOrphanedIdentity):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "ORPHANED_IDENTITY",
			Error:   usecase.ClientMessage(err),
			Details: err.Error(),
		}
	case errors.As(err, &upstreamErr):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "UPSTREAM_FAILURE",
			Error:   upstreamErr.Message,
			Details: upstreamErr.Detail,
		}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Error: err.Error()}
	}
}

// writeError responde con el error mapeado.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "Invalid JSON body"})
}
