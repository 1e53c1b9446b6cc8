package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestRequestTracing(t *testing.T) {
	r := chi.NewRouter()
	r.Use(requestTracing())

	var span trace.Span
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		span = trace.SpanFromContext(req.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotNil(t, span, "handlers must run inside a request span")
}
