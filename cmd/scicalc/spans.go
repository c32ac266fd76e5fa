package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanWriter is a span exporter which writes one line per span: the name,
// duration, status, and attributes.
type spanWriter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ sdktrace.SpanExporter = (*spanWriter)(nil)

func (s *spanWriter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, span := range spans {
		b.Reset()
		fmt.Fprintf(&b, "span %s %v %v", span.Name(), span.EndTime().Sub(span.StartTime()), span.Status().Code)
		for _, kv := range span.Attributes() {
			fmt.Fprintf(&b, " %s=%s", kv.Key, kv.Value.Emit())
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(s.w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (s *spanWriter) Shutdown(context.Context) error {
	return nil
}
