package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gotel "go.opentelemetry.io/otel"

	"github.com/judgebase/judgebase-api/internal/otel"
)

func TestSetupOTelSDK(t *testing.T) {
	t.Run("None", func(t *testing.T) {
		ctx := context.Background()
		shutdown, err := otel.SetupOTelSDK(ctx, otel.ExporterNone, "test")
		require.NoError(t, err)

		_, span := gotel.Tracer("test").Start(ctx, "span")
		assert.True(t, span.SpanContext().IsValid(), "spans should be recorded")
		span.End()

		require.NoError(t, shutdown(ctx))
		// second shutdown is a no-op
		require.NoError(t, shutdown(ctx))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := otel.SetupOTelSDK(context.Background(), "jaeger", "test")
		require.Error(t, err)
	})
}
