package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartTracing(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		// when
		ctx, span := StartTracing(context.Background(), "drip", false)

		// then
		assert.NotNil(t, ctx)
		assert.Nil(t, span)
		EndTracing(span, errors.New("ignored"))
	})

	t.Run("enabled", func(t *testing.T) {
		// given
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		// when
		_, span := StartTracing(context.Background(), "HandleWorkItem", true, attribute.Int64("request.id", 1))
		require.NotNil(t, span)
		EndTracing(span, errors.New("rpc unavailable"))

		// then
		ended := recorder.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, "HandleWorkItem", ended[0].Name())
		assert.Equal(t, codes.Error, ended[0].Status().Code)
		assert.Equal(t, "rpc unavailable", ended[0].Status().Description)
	})
}
