package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/menu"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// Claves del objeto de configuración del sidebar.
const (
	SidebarKeyEnabled   = "enabledMenuItems"
	SidebarKeyAvailable = "availableMenuItems"
	SidebarKeyVersion   = "version"
	SidebarKeyUserID    = "userId"
)

// Reintentos de una escritura sin versión que choca con otra concurrente.
const unversionedWriteAttempts = 3

// SidebarUseCase proxy de la configuración del sidebar guardada por la aplicación asociada.
// La versión la lleva esta consola: una escritura que presenta la versión leída falla
// con domain.ErrConflict si otra escritura se adelantó.
type SidebarUseCase struct {
	partner  ports.SidebarPartner
	versions repository.SidebarVersionRepository
	log      *logger.Logger
}

// NewSidebarUseCase construye el caso de uso.
func NewSidebarUseCase(partner ports.SidebarPartner, versions repository.SidebarVersionRepository, log *logger.Logger) *SidebarUseCase {
	return &SidebarUseCase{partner: partner, versions: versions, log: log}
}

// Get devuelve la configuración compartida. Si userID no está vacío se anota en la respuesta.
func (uc *SidebarUseCase) Get(ctx context.Context, authHeader, userID string) (map[string]any, error) {
	cfg, err := uc.partner.GetSidebarConfig(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	if _, ok := cfg[SidebarKeyAvailable]; !ok {
		cfg[SidebarKeyAvailable] = menu.Catalog()
	}
	version, err := uc.versions.Current(ctx, entity.SidebarScopeGlobal)
	if err != nil {
		return nil, fmt.Errorf("leer versión del sidebar: %w", err)
	}
	cfg[SidebarKeyVersion] = version
	if userID != "" {
		cfg[SidebarKeyUserID] = userID
	}
	return cfg, nil
}

// Save valida el cuerpo, avanza la versión y reenvía la lista al partner.
// Un enabledMenuItems que no sea array falla antes de cualquier llamada externa.
// Sin version en el cuerpo la escritura es incondicional.
func (uc *SidebarUseCase) Save(ctx context.Context, in dto.SidebarSaveInput) (map[string]any, error) {
	update, err := parseSidebarUpdate(in)
	if err != nil {
		return nil, err
	}

	next, err := uc.advance(ctx, update)
	if err != nil {
		return nil, err
	}

	body := map[string]any{SidebarKeyEnabled: update.EnabledMenuItems}
	if update.UserID != "" {
		body[SidebarKeyUserID] = update.UserID
	}
	res, err := uc.partner.PostSidebarConfig(ctx, update.AuthHeader, body)
	if err != nil {
		uc.log.Error().Err(err).Int64("version", next).Msg("el partner rechazó la configuración del sidebar")
		return nil, err
	}
	if res == nil {
		res = map[string]any{}
	}
	res[SidebarKeyVersion] = next

	unknown := 0
	for _, id := range update.EnabledMenuItems {
		if _, ok := menu.Lookup(id); !ok {
			unknown++
		}
	}
	uc.log.Info().
		Int64("version", next).
		Int("items", len(update.EnabledMenuItems)).
		Int("unknown", unknown).
		Str("user_id", update.UserID).
		Msg("configuración del sidebar actualizada")
	return res, nil
}

// Toggle activa o desactiva un item del catálogo sobre la configuración vigente,
// presentando la versión leída.
func (uc *SidebarUseCase) Toggle(ctx context.Context, authHeader, itemID string) (map[string]any, error) {
	if _, ok := menu.Lookup(itemID); !ok {
		return nil, domain.NewInputError(fmt.Sprintf("unknown menu item %q", itemID))
	}
	cfg, err := uc.Get(ctx, authHeader, "")
	if err != nil {
		return nil, err
	}

	var enabled []string
	if raw, ok := cfg[SidebarKeyEnabled].([]any); ok {
		for _, v := range raw {
			if id, ok := v.(string); ok {
				enabled = append(enabled, id)
			}
		}
	}
	toggled := menu.Toggle(enabled, itemID)
	items := make([]any, 0, len(toggled))
	for _, id := range toggled {
		items = append(items, id)
	}

	return uc.Save(ctx, dto.SidebarSaveInput{
		Body: map[string]any{
			SidebarKeyEnabled: items,
			SidebarKeyVersion: cfg[SidebarKeyVersion],
		},
		AuthHeader: authHeader,
	})
}

func (uc *SidebarUseCase) advance(ctx context.Context, update *entity.SidebarUpdate) (int64, error) {
	if update.Versioned {
		return uc.versions.Advance(ctx, entity.SidebarScopeGlobal, update.Version)
	}

	uc.log.Warn().Str("user_id", update.UserID).Msg("escritura del sidebar sin versión")
	var err error
	for i := 0; i < unversionedWriteAttempts; i++ {
		var current, next int64
		current, err = uc.versions.Current(ctx, entity.SidebarScopeGlobal)
		if err != nil {
			return 0, fmt.Errorf("leer versión del sidebar: %w", err)
		}
		next, err = uc.versions.Advance(ctx, entity.SidebarScopeGlobal, current)
		if !errors.Is(err, domain.ErrConflict) {
			return next, err
		}
	}
	return 0, err
}

func parseSidebarUpdate(in dto.SidebarSaveInput) (*entity.SidebarUpdate, error) {
	raw, ok := in.Body[SidebarKeyEnabled].([]any)
	if !ok {
		return nil, domain.NewInputError("enabledMenuItems must be an array")
	}
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		id, ok := v.(string)
		if !ok {
			return nil, domain.NewInputError("enabledMenuItems must contain only menu item ids")
		}
		items = append(items, id)
	}

	update := &entity.SidebarUpdate{
		EnabledMenuItems: items,
		UserID:           in.UserID,
		AuthHeader:       in.AuthHeader,
	}
	v, present := in.Body[SidebarKeyVersion]
	if !present || v == nil {
		return update, nil
	}
	version, ok := asVersion(v)
	if !ok {
		return nil, domain.NewInputError("version must be a non-negative integer")
	}
	update.Version = version
	update.Versioned = true
	return update, nil
}

// asVersion acepta los números tal como los deja encoding/json (float64) o enteros.
func asVersion(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), n >= 0
	case int64:
		return n, n >= 0
	default:
		return 0, false
	}
}
