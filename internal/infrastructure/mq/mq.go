// Package mq abstrae el broker de mensajería (Pub/Sub o RabbitMQ) usado para alertas operativas.
package mq

import (
	"context"
	"fmt"

	"github.com/jhoicas/tenant-admin/pkg/config"
)

// Message payload entregado a los suscriptores, independiente del broker.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler procesa un mensaje. Devolver error pide reintento (nack).
type Handler func(ctx context.Context, msg Message) error

// Backend operaciones comunes a los brokers.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Open construye el backend configurado. MQ_BACKEND=none devuelve (nil, nil).
func Open(ctx context.Context, cfg config.MQConfig) (Backend, error) {
	switch cfg.Backend {
	case config.MQNone, "":
		return nil, nil
	case config.MQPubSub:
		c, err := NewPubSubClient(ctx, cfg.PubSubProjectID, cfg.PubSubCredsFile)
		if err != nil {
			return nil, fmt.Errorf("mq: pubsub: %w", err)
		}
		return c, nil
	case config.MQRabbitMQ:
		c, err := NewRabbitMQClient(cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("mq: rabbitmq: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("mq: backend desconocido %q", cfg.Backend)
	}
}
