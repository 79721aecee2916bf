package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestInitWithoutExporter(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Init(ctx, Config{ServiceName: "shopadmin-test", Environment: "test", SampleRate: 1})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = shutdown(ctx) }()

	var sc trace.SpanContext
	h := WrapHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc = trace.SpanContextFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), "test")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !sc.IsValid() {
		t.Fatalf("expected a recorded span, provider %T", otel.GetTracerProvider())
	}
}
