package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// adminChecker es el contrato mínimo que necesita el middleware para autorizar mutaciones.
// Lo implementa *usecase.AccessUseCase.
type adminChecker interface {
	IsAdmin(ctx context.Context, uid, email string) (bool, error)
}

// RequireAdmin deja pasar solo a llamadores con rol admin. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalUID).
//
// Comportamiento:
//   - 403 Forbidden → el llamador no es admin.
//   - 503 Service Unavailable → no se pudo leer su registro.
func RequireAdmin(checker adminChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := GetUID(c)
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "UNAUTHORIZED",
				Error: "Authorization token is required",
			})
		}

		admin, err := checker.IsAdmin(c.UserContext(), uid, GetEmail(c))
		if err != nil {
			log.Error().Err(err).Str("uid", uid).Msg("no se pudo verificar el rol")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:  "ROLE_CHECK_FAILED",
				Error: "Could not verify permissions, try again later",
			})
		}
		if !admin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "FORBIDDEN",
				Error: "Admin role is required",
			})
		}
		return c.Next()
	}
}
