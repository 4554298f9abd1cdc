package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NatsPublisher publishes export events on a NATS subject.
type NatsPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNatsPublisher(url string, subject string, logger *zap.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("car-search-webserver"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to nats at %s: %w", url, err)
	}
	return &NatsPublisher{nc: nc, subject: subject}, nil
}

// PublishExport sends event as JSON on the configured subject.
func (p *NatsPublisher) PublishExport(ctx context.Context, event models.ExportEvent) error {
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats not connected")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not encode export event: %w", err)
	}

	return p.nc.Publish(p.subject, payload)
}

func (p *NatsPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}
