package localauth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/localauth"
	"github.com/jhoicas/tenant-admin/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newProvider() *localauth.Provider {
	return localauth.New(localauth.Config{Secret: testSecret, ExpMinutes: 60, Issuer: "tenant-admin-test"})
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	p := newProvider()

	uid, err := p.CreateUser(ctx, entity.NewIdentity{Email: "Ana@x.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	_, err = p.CreateUser(ctx, entity.NewIdentity{Email: "ana@X.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreateUser_EntradaInvalida(t *testing.T) {
	p := newProvider()
	for _, in := range []entity.NewIdentity{
		{Email: "", Password: "secreto1"},
		{Email: "sin-arroba", Password: "secreto1"},
		{Email: "a@", Password: "secreto1"},
		{Email: "a@x.com", Password: "123"},
	} {
		_, err := p.CreateUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v", in)
	}
}

func TestSignInYVerifyToken(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	uid, err := p.CreateUser(ctx, entity.NewIdentity{Email: "ana@x.com", Password: "secreto1"})
	require.NoError(t, err)

	_, _, err = p.SignIn(ctx, "ana@x.com", "otra")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token, ident, err := p.SignIn(ctx, "ANA@x.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, uid, ident.UID)

	verified, err := p.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uid, verified.UID)
	assert.Equal(t, "ana@x.com", verified.Email)
}

func TestVerifyToken_CuentaBorradaOTokenAjeno(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	uid, err := p.CreateUser(ctx, entity.NewIdentity{Email: "ana@x.com", Password: "secreto1"})
	require.NoError(t, err)
	token, _, err := p.SignIn(ctx, "ana@x.com", "secreto1")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, uid))
	_, err = p.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	foreign, err := jwt.Generate("otro-secret", "u", "u@x.com", "x", 60)
	require.NoError(t, err)
	_, err = p.VerifyToken(ctx, foreign)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDeleteUser_NoExiste(t *testing.T) {
	assert.ErrorIs(t, newProvider().DeleteUser(context.Background(), "nope"), domain.ErrNotFound)
}

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	a, err := p.Seed(ctx, entity.NewIdentity{Email: "ops@x.com", Password: "secreto1"})
	require.NoError(t, err)
	b, err := p.Seed(ctx, entity.NewIdentity{Email: "ops@x.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
