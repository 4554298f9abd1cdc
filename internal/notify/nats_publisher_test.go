package notify

import (
	"context"
	"testing"

	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewNatsPublisher_Unreachable(t *testing.T) {
	_, err := NewNatsPublisher("nats://127.0.0.1:1", "cars.exported", zap.NewNop())
	assert.Error(t, err)
}

func TestPublishExport_NotConnected(t *testing.T) {
	publisher := &NatsPublisher{subject: "cars.exported"}

	err := publisher.PublishExport(context.Background(), models.ExportEvent{FileName: "cars.xml"})
	assert.Error(t, err)
	assert.NotPanics(t, publisher.Close)
}
