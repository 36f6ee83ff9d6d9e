package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tenant-admin/internal/domain"
)

func TestErrorResponse_Prohibido(t *testing.T) {
	status, body := errorResponse(domain.ErrEmailNotAllowed)
	assert.Equal(t, 403, status)
	assert.Equal(t, "EMAIL_NOT_ALLOWED", body.Code)
	assert.Equal(t, "Email is not allowed", body.Error)

	status, body = errorResponse(fmt.Errorf("rol insuficiente: %w", domain.ErrForbidden))
	assert.Equal(t, 403, status)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Equal(t, "Access denied", body.Error)
}

func TestErrorResponse_Desconocido(t *testing.T) {
	status, body := errorResponse(errors.New("boom"))
	assert.Equal(t, 500, status)
	assert.Equal(t, "INTERNAL", body.Code)
}
