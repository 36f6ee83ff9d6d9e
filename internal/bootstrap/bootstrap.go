// Package bootstrap arma el grafo de dependencias según la configuración. Lo usan cmd/api
// y cmd/adminctl.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	fb "firebase.google.com/go/v4"

	"github.com/jhoicas/tenant-admin/internal/application/auth"
	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/application/usecase"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/access"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/firebase"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/firestore"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/localauth"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/memory"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/mq"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/partner"
	"github.com/jhoicas/tenant-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tenant-admin/internal/interfaces/http"
	"github.com/jhoicas/tenant-admin/pkg/config"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// App casos de uso listos para servir.
type App struct {
	UserUC    *usecase.UserUseCase
	SidebarUC *usecase.SidebarUseCase
	OrphanUC  *usecase.OrphanUseCase
	AccessUC  *usecase.AccessUseCase
	AuthUC    *auth.AuthUseCase
	Identity  ports.IdentityProvider
	Broker    mq.Backend // nil con MQ_BACKEND=none

	log     *logger.Logger
	closers []func() error
}

type stores struct {
	users    repository.UserRepository
	orphans  repository.OrphanRepository
	versions repository.SidebarVersionRepository
}

// Build conecta proveedor de identidad, almacén, broker y partner.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{log: log}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	var fbApp *fb.App
	if cfg.Identity.Provider == config.IdentityFirebase || cfg.Store.Backend == config.StoreFirestore {
		app, err := firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
		fbApp = app
	}

	var local *localauth.Provider
	switch cfg.Identity.Provider {
	case config.IdentityFirebase:
		idp, err := firebase.NewIdentityProvider(ctx, fbApp)
		if err != nil {
			return nil, err
		}
		a.Identity = idp
	case config.IdentityLocal:
		local = localauth.New(localauth.Config{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		a.Identity = local
	default:
		return nil, fmt.Errorf("bootstrap: IDENTITY_PROVIDER desconocido %q", cfg.Identity.Provider)
	}

	st, err := a.openStores(ctx, cfg, fbApp)
	if err != nil {
		return nil, err
	}

	var alerts ports.AlertPublisher
	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		return nil, err
	}
	if broker != nil {
		a.Broker = broker
		a.closers = append(a.closers, broker.Close)
		alerts = mq.NewOrphanAlerts(broker, cfg.MQ.AlertChannel)
	}

	allow := access.NewAllowlist(cfg.Access.AllowedEmails)
	partnerClient := partner.NewClient(cfg.Partner.BaseURL, time.Duration(cfg.Partner.TimeoutSeconds)*time.Second)

	a.AccessUC = usecase.NewAccessUseCase(st.users, allow, cfg.Access.EnforceRoles)
	a.OrphanUC = usecase.NewOrphanUseCase(st.orphans, st.users, a.Identity, alerts, log)
	a.UserUC = usecase.NewUserUseCase(st.users, a.Identity, a.OrphanUC, log, cfg.Identity.PasswordLength)
	a.SidebarUC = usecase.NewSidebarUseCase(partnerClient, st.versions, log)

	if local != nil {
		a.AuthUC = auth.NewAuthUseCase(local, allow)
		if err := seedLocalAdmin(ctx, cfg.Identity, local, st.users); err != nil {
			return nil, err
		}
	}

	ok = true
	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg *config.Config, fbApp *fb.App) (*stores, error) {
	switch cfg.Store.Backend {
	case config.StoreFirestore:
		client, err := fbApp.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: cliente firestore: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return &stores{
			users:    firestore.NewUserRepository(client),
			orphans:  firestore.NewOrphanRepository(client),
			versions: firestore.NewSidebarVersionRepository(client),
		}, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: conexión a PostgreSQL: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		return &stores{
			users:    postgres.NewUserRepository(pool),
			orphans:  postgres.NewOrphanRepository(pool),
			versions: postgres.NewSidebarVersionRepository(pool),
		}, nil
	case config.StoreMemory:
		return &stores{
			users:    memory.NewUserRepository(),
			orphans:  memory.NewOrphanRepository(),
			versions: memory.NewSidebarVersionRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("bootstrap: STORE_BACKEND desconocido %q", cfg.Store.Backend)
	}
}

// seedLocalAdmin crea el operador inicial del proveedor local con un registro admin.
func seedLocalAdmin(ctx context.Context, cfg config.IdentityConfig, idp *localauth.Provider, users repository.UserRepository) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	uid, err := idp.Seed(ctx, entity.NewIdentity{Email: cfg.SeedAdminEmail, Password: cfg.SeedAdminPassword})
	if err != nil {
		return fmt.Errorf("bootstrap: semilla de operador: %w", err)
	}
	_, err = users.GetByID(ctx, uid)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("bootstrap: semilla de operador: %w", err)
	}
	now := time.Now()
	err = users.Create(ctx, &entity.User{
		ID:          uid,
		Email:       cfg.SeedAdminEmail,
		DisplayName: cfg.SeedAdminEmail,
		CompanyName: "console",
		Role:        entity.RoleAdmin,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("bootstrap: semilla de operador: %w", err)
	}
	return nil
}

// RouterDeps dependencias del router HTTP.
func (a *App) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		UserUC:    a.UserUC,
		SidebarUC: a.SidebarUC,
		OrphanUC:  a.OrphanUC,
		AccessUC:  a.AccessUC,
		AuthUC:    a.AuthUC,
		Verifier:  a.Identity,
		Log:       a.log,
	}
}

// Close libera conexiones en orden inverso de apertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("cierre de recurso")
		}
	}
	a.closers = nil
}
