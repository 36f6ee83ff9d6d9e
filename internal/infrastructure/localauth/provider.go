// Package localauth es un proveedor de identidad en memoria para desarrollo: cuentas con
// contraseña bcrypt y tokens JWT HS256 firmados con JWT_SECRET.
package localauth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/pkg/jwt"
)

var (
	_ ports.IdentityProvider = (*Provider)(nil)
	_ ports.PasswordSignIn   = (*Provider)(nil)
)

// Config parámetros de emisión de tokens.
type Config struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

type account struct {
	uid          string
	email        string
	displayName  string
	passwordHash []byte
}

// Provider cuentas en memoria indexadas por uid y por email normalizado.
type Provider struct {
	cfg     Config
	mu      sync.RWMutex
	byUID   map[string]*account
	byEmail map[string]*account
}

// New construye el proveedor.
func New(cfg Config) *Provider {
	return &Provider{
		cfg:     cfg,
		byUID:   make(map[string]*account),
		byEmail: make(map[string]*account),
	}
}

// CreateUser registra una cuenta. El email se compara sin distinguir mayúsculas.
func (p *Provider) CreateUser(_ context.Context, in entity.NewIdentity) (string, error) {
	email := strings.TrimSpace(in.Email)
	if !validEmail(email) {
		return "", domain.NewInputError("The email address is malformed")
	}
	if len(in.Password) < 6 {
		return "", domain.NewInputError("Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	key := emailKey(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[key]; ok {
		return "", domain.ErrAlreadyExists
	}
	acc := &account{
		uid:          uuid.New().String(),
		email:        email,
		displayName:  in.DisplayName,
		passwordHash: hash,
	}
	p.byUID[acc.uid] = acc
	p.byEmail[key] = acc
	return acc.uid, nil
}

// DeleteUser elimina la cuenta. Devuelve domain.ErrNotFound si no existe.
func (p *Provider) DeleteUser(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byUID[uid]
	if !ok {
		return domain.ErrNotFound
	}
	delete(p.byUID, uid)
	delete(p.byEmail, emailKey(acc.email))
	return nil
}

// VerifyToken valida firma y expiración, y que la cuenta siga existiendo.
func (p *Provider) VerifyToken(_ context.Context, token string) (*entity.Identity, error) {
	uid, email, err := jwt.Parse(p.cfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	p.mu.RLock()
	_, ok := p.byUID[uid]
	p.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Identity{UID: uid, Email: email}, nil
}

// SignIn verifica email/password con bcrypt y emite un token.
func (p *Provider) SignIn(_ context.Context, email, password string) (string, *entity.Identity, error) {
	p.mu.RLock()
	acc, ok := p.byEmail[emailKey(email)]
	p.mu.RUnlock()
	if !ok {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(p.cfg.Secret, acc.uid, acc.email, p.cfg.Issuer, p.cfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, &entity.Identity{UID: acc.uid, Email: acc.email}, nil
}

// Seed crea una cuenta si el email no existe todavía (arranque en desarrollo).
func (p *Provider) Seed(ctx context.Context, in entity.NewIdentity) (string, error) {
	p.mu.RLock()
	acc, ok := p.byEmail[emailKey(in.Email)]
	p.mu.RUnlock()
	if ok {
		return acc.uid, nil
	}
	return p.CreateUser(ctx, in)
}

func emailKey(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// validEmail comprobación mínima: una arroba con texto a ambos lados y sin espacios.
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
