package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// MockUserRepo mocks repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdentity mocks ports.IdentityProvider
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CreateUser(ctx context.Context, in entity.NewIdentity) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockIdentity) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockIdentity) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	args := m.Called(ctx, token)
	ident, _ := args.Get(0).(*entity.Identity)
	return ident, args.Error(1)
}

// MockOrphanRepo mocks repository.OrphanRepository
type MockOrphanRepo struct {
	mock.Mock
}

func (m *MockOrphanRepo) Record(ctx context.Context, o *entity.Orphan) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrphanRepo) List(ctx context.Context) ([]*entity.Orphan, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Orphan)
	return list, args.Error(1)
}

func (m *MockOrphanRepo) Get(ctx context.Context, uid string) (*entity.Orphan, error) {
	args := m.Called(ctx, uid)
	o, _ := args.Get(0).(*entity.Orphan)
	return o, args.Error(1)
}

func (m *MockOrphanRepo) Resolve(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockAlerts mocks ports.AlertPublisher
type MockAlerts struct {
	mock.Mock
}

func (m *MockAlerts) PublishOrphan(ctx context.Context, o *entity.Orphan) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockPartner mocks ports.SidebarPartner
type MockPartner struct {
	mock.Mock
}

func (m *MockPartner) GetSidebarConfig(ctx context.Context, authHeader string) (map[string]any, error) {
	args := m.Called(ctx, authHeader)
	cfg, _ := args.Get(0).(map[string]any)
	return cfg, args.Error(1)
}

func (m *MockPartner) PostSidebarConfig(ctx context.Context, authHeader string, body map[string]any) (map[string]any, error) {
	args := m.Called(ctx, authHeader, body)
	res, _ := args.Get(0).(map[string]any)
	return res, args.Error(1)
}

// MockVersions mocks repository.SidebarVersionRepository
type MockVersions struct {
	mock.Mock
}

func (m *MockVersions) Current(ctx context.Context, scope string) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVersions) Advance(ctx context.Context, scope string, expected int64) (int64, error) {
	args := m.Called(ctx, scope, expected)
	return args.Get(0).(int64), args.Error(1)
}
