package firebase

import (
	"context"
	"fmt"
	"strings"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// authClient subconjunto de *auth.Client que usa el proveedor.
type authClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)

// IdentityProvider adaptador de Firebase Auth al puerto de identidad.
type IdentityProvider struct {
	client authClient
}

// NewIdentityProvider obtiene el cliente de Auth de la app.
func NewIdentityProvider(ctx context.Context, app *fb.App) (*IdentityProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: cliente auth: %w", err)
	}
	return &IdentityProvider{client: client}, nil
}

// CreateUser crea la cuenta y devuelve su uid.
func (p *IdentityProvider) CreateUser(ctx context.Context, in entity.NewIdentity) (string, error) {
	params := (&auth.UserToCreate{}).Email(in.Email).Password(in.Password)
	if in.DisplayName != "" {
		params = params.DisplayName(in.DisplayName)
	}
	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", mapAuthError(err)
	}
	return rec.UID, nil
}

// DeleteUser borra la cuenta; un uid inexistente devuelve domain.ErrNotFound.
func (p *IdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return mapAuthError(err)
	}
	return nil
}

// VerifyToken valida un ID token de Firebase.
func (p *IdentityProvider) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	tok, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	email, _ := tok.Claims["email"].(string)
	return &entity.Identity{UID: tok.UID, Email: email}, nil
}

func mapAuthError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case auth.IsUserNotFound(err):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case isInvalidEmail(err):
		return domain.NewInputError("The email address is malformed")
	case isWeakPassword(err):
		return domain.NewInputError("Password must be at least 6 characters")
	default:
		return fmt.Errorf("firebase auth: %w", err)
	}
}

func isInvalidEmail(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "malformed email") || strings.Contains(msg, "INVALID_EMAIL")
}

func isWeakPassword(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "password must be a string at least 6 characters") ||
		strings.Contains(msg, "WEAK_PASSWORD")
}
