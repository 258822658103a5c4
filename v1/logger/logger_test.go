package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core), tracing), logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(Warning))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestFieldsAndErrorAreAttached(t *testing.T) {
	log, logs := newObserved(false)

	log.Error("upsert failed", errors.New("boom"), map[string]interface{}{"collection": "docs"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "upsert failed", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "docs", ctx["collection"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log, logs := newObserved(true)
	log.InfoWithContext(ctx, "query served", nil)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestWithContextWithoutTracingOrSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log, logs := newObserved(false)
	log.WarnWithContext(ctx, "no ids", nil)
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")

	log, logs = newObserved(true)
	log.DebugWithContext(context.Background(), "no span", nil)
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestNewNopDiscards(t *testing.T) {
	log := NewNop()
	log.Info("ignored", nil)
	log.ErrorWithContext(context.Background(), "ignored", errors.New("x"))
}

func TestNewLoggerClientHonoursLevel(t *testing.T) {
	log := NewLoggerClient(Config{Level: Warning, ServiceName: "bevec-test"})
	assert.False(t, log.Zap.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Zap.Core().Enabled(zapcore.WarnLevel))
}
