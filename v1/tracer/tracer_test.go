package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpanRecordsErrors(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tr, err := NewClient(Config{ServiceName: "bevec-test"}, nil, sdktrace.WithSpanProcessor(sr))
	require.NoError(t, err)
	defer func() { _ = tr.Shutdown(context.Background()) }()

	_, span := tr.StartSpan(context.Background(), "bevec.query")
	SetAttributes(span, map[string]interface{}{"collection": "docs", "top_k": 5})
	RecordErrorOnSpan(span, errors.New("backend down"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "bevec.query", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("collection", "docs"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("top_k", 5))
	assert.Len(t, ended[0].Events(), 1)
}

func TestRecordErrorOnSpanIgnoresNil(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	_, span := tp.Tracer("t").Start(context.Background(), "ok")
	RecordErrorOnSpan(span, nil)
	span.End()

	assert.Equal(t, codes.Unset, sr.Ended()[0].Status().Code)
}

func TestAttributesFallsBackToString(t *testing.T) {
	attrs := Attributes(map[string]interface{}{"dims": []int{1, 2}})
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.String("dims", "[1 2]"), attrs[0])
}

func TestShutdownNilSafe(t *testing.T) {
	var tr *Tracer
	assert.NoError(t, tr.Shutdown(context.Background()))
}
