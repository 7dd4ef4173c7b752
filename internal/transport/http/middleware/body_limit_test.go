package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBodyLimitAllowsLargerUploads(t *testing.T) {
	read := func(contentType string, size int) error {
		var readErr error
		handler := BodyLimit(16, 64)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", size)))
		req.Header.Set("Content-Type", contentType)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		return readErr
	}

	if err := read("application/json", 32); err == nil {
		t.Fatal("expected json body over the limit to fail")
	}
	if err := read("multipart/form-data; boundary=x", 32); err != nil {
		t.Fatalf("expected upload within the upload limit, got %v", err)
	}
	if err := read("multipart/form-data; boundary=x", 128); err == nil {
		t.Fatal("expected upload over the upload limit to fail")
	}
}

func TestSecureHeadersAllowAssetOrigin(t *testing.T) {
	handler := SecureHeaders(true, "https://cdn.example.com")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "script-src 'self' https://cdn.example.com") {
		t.Fatalf("expected asset origin in csp, got %q", csp)
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("expected hsts in production")
	}
}
