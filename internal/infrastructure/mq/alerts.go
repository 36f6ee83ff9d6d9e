package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

// AttrKind atributo con el tipo de huérfano, para filtrar sin decodificar el cuerpo.
const AttrKind = "kind"

var _ ports.AlertPublisher = (*OrphanAlerts)(nil)

// OrphanAlert cuerpo JSON publicado por cada huérfano.
type OrphanAlert struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	DetectedAt time.Time `json:"detectedAt"`
}

// OrphanAlerts publica huérfanos en el canal de alertas.
type OrphanAlerts struct {
	backend Backend
	channel string
}

// NewOrphanAlerts construye el publicador.
func NewOrphanAlerts(backend Backend, channel string) *OrphanAlerts {
	return &OrphanAlerts{backend: backend, channel: channel}
}

// PublishOrphan serializa y publica el huérfano.
func (a *OrphanAlerts) PublishOrphan(ctx context.Context, o *entity.Orphan) error {
	data, err := EncodeOrphan(o)
	if err != nil {
		return err
	}
	if _, err := a.backend.Publish(ctx, a.channel, data, map[string]string{AttrKind: o.Kind}); err != nil {
		return fmt.Errorf("mq: publicar huérfano %s: %w", o.UID, err)
	}
	return nil
}

// EncodeOrphan cuerpo JSON de la alerta.
func EncodeOrphan(o *entity.Orphan) ([]byte, error) {
	return json.Marshal(OrphanAlert{
		UID:        o.UID,
		Email:      o.Email,
		Kind:       o.Kind,
		Reason:     o.Reason,
		DetectedAt: o.DetectedAt.UTC(),
	})
}

// DecodeOrphan inverso de EncodeOrphan, para consumidores del canal.
func DecodeOrphan(data []byte) (*entity.Orphan, error) {
	var a OrphanAlert
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("mq: decodificar alerta: %w", err)
	}
	return &entity.Orphan{UID: a.UID, Email: a.Email, Kind: a.Kind, Reason: a.Reason, DetectedAt: a.DetectedAt}, nil
}
