package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/tenant-admin/internal/application/dto"
	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
	"github.com/jhoicas/tenant-admin/internal/domain/repository"
	"github.com/jhoicas/tenant-admin/pkg/logger"
)

// OrphanUseCase mantiene el registro de uids con identidad y documento desincronizados.
type OrphanUseCase struct {
	orphans  repository.OrphanRepository
	users    repository.UserRepository
	identity ports.IdentityProvider
	alerts   ports.AlertPublisher
	log      *logger.Logger
}

// NewOrphanUseCase construye el caso de uso. alerts puede ser nil.
func NewOrphanUseCase(
	orphans repository.OrphanRepository,
	users repository.UserRepository,
	identity ports.IdentityProvider,
	alerts ports.AlertPublisher,
	log *logger.Logger,
) *OrphanUseCase {
	return &OrphanUseCase{orphans: orphans, users: users, identity: identity, alerts: alerts, log: log}
}

// Report registra el huérfano y publica la alerta. Los fallos de ambos pasos solo se loguean.
func (uc *OrphanUseCase) Report(ctx context.Context, o *entity.Orphan) {
	uc.log.Error().
		Str("uid", o.UID).
		Str("email", o.Email).
		Str("kind", o.Kind).
		Str("reason", o.Reason).
		Msg("identidad huérfana detectada")

	if err := uc.orphans.Record(ctx, o); err != nil {
		uc.log.Error().Err(err).Str("uid", o.UID).Msg("no se pudo registrar el huérfano")
	}
	if uc.alerts == nil {
		return
	}
	if err := uc.alerts.PublishOrphan(ctx, o); err != nil {
		uc.log.Warn().Err(err).Str("uid", o.UID).Msg("no se pudo publicar la alerta de huérfano")
	}
}

// List devuelve los huérfanos pendientes.
func (uc *OrphanUseCase) List(ctx context.Context) ([]*dto.OrphanResponse, error) {
	list, err := uc.orphans.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrphanResponse, 0, len(list))
	for _, o := range list {
		out = append(out, entityToOrphanResponse(o))
	}
	return out, nil
}

// Reconcile reintenta la limpieza pendiente del uid y lo quita del registro si termina bien.
func (uc *OrphanUseCase) Reconcile(ctx context.Context, uid string) error {
	o, err := uc.orphans.Get(ctx, uid)
	if err != nil {
		return err
	}

	switch o.Kind {
	case entity.OrphanIdentityWithoutRecord:
		if err := uc.identity.DeleteUser(ctx, uid); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("reconciliar %s: borrar identidad: %w", uid, err)
		}
	case entity.OrphanRecordWithoutIdentity:
		if err := uc.users.Delete(ctx, uid); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("reconciliar %s: borrar registro: %w", uid, err)
		}
	default:
		return fmt.Errorf("reconciliar %s: tipo de huérfano desconocido %q", uid, o.Kind)
	}

	if err := uc.orphans.Resolve(ctx, uid); err != nil {
		return fmt.Errorf("reconciliar %s: %w", uid, err)
	}
	uc.log.Info().Str("uid", uid).Str("kind", o.Kind).Msg("huérfano reconciliado")
	return nil
}

func entityToOrphanResponse(o *entity.Orphan) *dto.OrphanResponse {
	return &dto.OrphanResponse{
		UID:        o.UID,
		Email:      o.Email,
		Kind:       o.Kind,
		Reason:     o.Reason,
		DetectedAt: o.DetectedAt,
	}
}
