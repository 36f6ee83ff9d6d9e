package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/access"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

func TestIsAdmin_SegunRolDelRegistro(t *testing.T) {
	repo := &MockUserRepo{}
	repo.On("GetByID", mock.Anything, "admin-uid").Return(&entity.User{ID: "admin-uid", Role: entity.RoleAdmin}, nil)
	repo.On("GetByID", mock.Anything, "user-uid").Return(&entity.User{ID: "user-uid", Role: entity.RoleUser}, nil)
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist(nil), true)

	ok, err := uc.IsAdmin(context.Background(), "admin-uid", "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsAdmin(context.Background(), "user-uid", "u@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAdmin_OperadorSinRegistroEnLista(t *testing.T) {
	repo := &MockUserRepo{}
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrUserNotFound)
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist([]string{"ops@x.com"}), true)

	ok, err := uc.IsAdmin(context.Background(), "ops-uid", "OPS@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.IsAdmin(context.Background(), "other-uid", "other@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAdmin_SinListaOperadorSinRegistroPuedeArrancar(t *testing.T) {
	repo := &MockUserRepo{}
	repo.On("GetByID", mock.Anything, "first-op").Return(nil, domain.ErrUserNotFound)
	repo.On("GetByID", mock.Anything, "plain").Return(&entity.User{ID: "plain", Role: entity.RoleUser}, nil)
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist(nil), true)

	assert.True(t, uc.Allowed("ops@x.com"))
	ok, err := uc.IsAdmin(context.Background(), "first-op", "ops@x.com")
	require.NoError(t, err)
	assert.True(t, ok, "sin lista ni registro el primer operador puede dar de alta cuentas")

	ok, err = uc.IsAdmin(context.Background(), "plain", "plain@x.com")
	require.NoError(t, err)
	assert.False(t, ok, "un registro con rol user sigue sin poder modificar")
}

func TestIsAdmin_SinRolesObligatorios(t *testing.T) {
	repo := &MockUserRepo{}
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist(nil), false)

	ok, err := uc.IsAdmin(context.Background(), "x", "x@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestIsAdmin_FalloDelAlmacen(t *testing.T) {
	repo := &MockUserRepo{}
	repo.On("GetByID", mock.Anything, "x").Return(nil, errors.New("timeout"))
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist(nil), true)

	_, err := uc.IsAdmin(context.Background(), "x", "x@x.com")
	assert.Error(t, err)
}

func TestSession(t *testing.T) {
	repo := &MockUserRepo{}
	repo.On("GetByID", mock.Anything, "m").Return(&entity.User{ID: "m", Role: entity.RoleManager}, nil)
	uc := usecase.NewAccessUseCase(repo, access.NewAllowlist([]string{"m@x.com"}), true)

	out, err := uc.Session(context.Background(), entity.Identity{UID: "m", Email: "m@x.com"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.False(t, out.Admin)
	assert.True(t, out.Allowed)
}
