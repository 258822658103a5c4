package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// StartSpan starts a span named name from this provider.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, oteltrace.Span) {
	return t.provider.Tracer("github.com/Aleph-Alpha/bevec").Start(ctx, name)
}

// RecordErrorOnSpan records err on span and marks the span as failed.
func RecordErrorOnSpan(span oteltrace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes converts attrs with Attributes and sets them on span.
func SetAttributes(span oteltrace.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}
	span.SetAttributes(Attributes(attrs)...)
}

// Attributes converts a field map to span attributes. Unsupported types are
// formatted with fmt.Sprint.
func Attributes(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			out = append(out, attribute.String(k, val))
		case int:
			out = append(out, attribute.Int(k, val))
		case int64:
			out = append(out, attribute.Int64(k, val))
		case float64:
			out = append(out, attribute.Float64(k, val))
		case bool:
			out = append(out, attribute.Bool(k, val))
		default:
			out = append(out, attribute.String(k, fmt.Sprint(val)))
		}
	}
	return out
}
