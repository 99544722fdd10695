package xlog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceIDs 从 context 中提取 OpenTelemetry trace_id 和 span_id
//
// ctx 为 nil 或不含有效 SpanContext 时返回空字符串。
func traceIDs(ctx context.Context) (traceID, spanID string) {
	if ctx == nil {
		return "", ""
	}
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	if sc.HasSpanID() {
		spanID = sc.SpanID().String()
	}
	return traceID, spanID
}
