package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_WritesSpansOnShutdown(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	provider, err := Setup(ctx, "car-search-test", &out)
	require.NoError(t, err)

	_, span := otel.Tracer("tracing_test").Start(ctx, "CarSearchUseCase.FindCars")
	span.End()

	require.NoError(t, provider.Shutdown(ctx))
	assert.Contains(t, out.String(), "CarSearchUseCase.FindCars")
	assert.Contains(t, out.String(), "car-search-test")
}

func TestSetup_RequiresServiceName(t *testing.T) {
	_, err := Setup(context.Background(), "", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestShutdown_NilProvider(t *testing.T) {
	var provider *Provider
	assert.NoError(t, provider.Shutdown(context.Background()))
}
