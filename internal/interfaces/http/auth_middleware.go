package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// Locals keys para el sujeto verificado en Fiber.
const (
	LocalUID   = "uid"
	LocalEmail = "email"
)

// tokenVerifier lo implementa el proveedor de identidad (Firebase o local).
type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

// emailGate lista de emails que pueden entrar a la consola.
type emailGate interface {
	Allowed(email string) bool
}

// AuthMiddleware valida el Bearer token con el proveedor de identidad, aplica la lista de
// emails permitidos y deja uid y email en c.Locals.
func AuthMiddleware(verifier tokenVerifier, gate emailGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "MISSING_TOKEN",
				Error: "Authorization token is required",
			})
		}
		ident, err := verifier.VerifyToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "INVALID_TOKEN",
				Error: "Invalid or expired token",
			})
		}
		if !gate.Allowed(ident.Email) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "EMAIL_NOT_ALLOWED",
				Error: "Email is not allowed",
			})
		}
		c.Locals(LocalUID, ident.UID)
		c.Locals(LocalEmail, ident.Email)
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUID devuelve el uid del llamador (después del middleware de auth).
func GetUID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUID).(string)
	return s
}

// GetEmail devuelve el email del llamador (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
