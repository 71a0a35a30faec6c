package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var got string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == "" {
		t.Fatal("Expected a request id in the handler context")
	}
	if !strings.HasPrefix(got, "req-") {
		t.Errorf("Request id %q missing req- prefix", got)
	}
	if header := rec.Header().Get("X-Request-ID"); header != got {
		t.Errorf("Response header %q does not match context id %q", header, got)
	}
}

func TestRequestIDMiddleware_PreservesIncomingID(t *testing.T) {
	var got string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-upstream")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "req-upstream" {
		t.Errorf("Expected upstream id to be kept, got %q", got)
	}
}

func TestRequestID_EmptyWithoutMiddleware(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Errorf("Expected empty id on a bare context, got %q", id)
	}
}
