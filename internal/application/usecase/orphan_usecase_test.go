package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

type orphanFixture struct {
	orphans  *MockOrphanRepo
	users    *MockUserRepo
	identity *MockIdentity
	uc       *usecase.OrphanUseCase
}

func newOrphanFixture() *orphanFixture {
	f := &orphanFixture{orphans: &MockOrphanRepo{}, users: &MockUserRepo{}, identity: &MockIdentity{}}
	f.uc = usecase.NewOrphanUseCase(f.orphans, f.users, f.identity, nil, logger.Nop())
	return f
}

func TestOrphanList(t *testing.T) {
	f := newOrphanFixture()
	detected := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.orphans.On("List", mock.Anything).Return([]*entity.Orphan{
		{UID: "u1", Email: "a@x.com", Kind: entity.OrphanIdentityWithoutRecord, Reason: "r", DetectedAt: detected},
	}, nil)

	out, err := f.uc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].UID)
	assert.Equal(t, detected, out[0].DetectedAt)
}

func TestOrphanReport_SinPublicadorSoloRegistra(t *testing.T) {
	f := newOrphanFixture()
	o := &entity.Orphan{UID: "u1", Kind: entity.OrphanIdentityWithoutRecord}
	f.orphans.On("Record", mock.Anything, o).Return(errors.New("no disponible"))

	f.uc.Report(context.Background(), o)

	f.orphans.AssertExpectations(t)
}

func TestOrphanReconcile_IdentidadSinRegistro(t *testing.T) {
	f := newOrphanFixture()
	f.orphans.On("Get", mock.Anything, "u1").Return(&entity.Orphan{UID: "u1", Kind: entity.OrphanIdentityWithoutRecord}, nil)
	f.identity.On("DeleteUser", mock.Anything, "u1").Return(domain.ErrNotFound)
	f.orphans.On("Resolve", mock.Anything, "u1").Return(nil)

	require.NoError(t, f.uc.Reconcile(context.Background(), "u1"))
	f.orphans.AssertExpectations(t)
	f.identity.AssertExpectations(t)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrphanReconcile_RegistroSinIdentidad(t *testing.T) {
	f := newOrphanFixture()
	f.orphans.On("Get", mock.Anything, "u2").Return(&entity.Orphan{UID: "u2", Kind: entity.OrphanRecordWithoutIdentity}, nil)
	f.users.On("Delete", mock.Anything, "u2").Return(nil)
	f.orphans.On("Resolve", mock.Anything, "u2").Return(nil)

	require.NoError(t, f.uc.Reconcile(context.Background(), "u2"))
	f.identity.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	f.users.AssertExpectations(t)
}

func TestOrphanReconcile_FalloMantieneLaEntrada(t *testing.T) {
	f := newOrphanFixture()
	f.orphans.On("Get", mock.Anything, "u1").Return(&entity.Orphan{UID: "u1", Kind: entity.OrphanIdentityWithoutRecord}, nil)
	f.identity.On("DeleteUser", mock.Anything, "u1").Return(errors.New("auth caído"))

	err := f.uc.Reconcile(context.Background(), "u1")

	require.Error(t, err)
	f.orphans.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestOrphanReconcile_NoExiste(t *testing.T) {
	f := newOrphanFixture()
	f.orphans.On("Get", mock.Anything, "zz").Return(nil, domain.ErrNotFound)

	assert.ErrorIs(t, f.uc.Reconcile(context.Background(), "zz"), domain.ErrNotFound)
}
