package tracing_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := tracing.Init(t.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)), tracing.Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}

func TestStartEnd_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	_, span := tracing.Start(t.Context(), "checkout")
	tracing.End(span, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "checkout", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
