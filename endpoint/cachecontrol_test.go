package endpoint

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheControlMiddleware(t *testing.T) {
	mw := cacheControlMiddleware([]cacheRule{{contentType: "text/html", value: "no-cache"}}, "public")

	tests := []struct {
		name        string
		contentType string
		preset      string
		code        int
		want        string
	}{
		{"matching rule", "text/html; charset=utf-8", "", http.StatusOK, "no-cache"},
		{"case insensitive", "TEXT/HTML", "", http.StatusOK, "no-cache"},
		{"fallback", "text/css", "", http.StatusOK, "public"},
		{"handler value kept", "text/css", "private", http.StatusOK, "private"},
		{"errors untouched", "text/plain", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				if tt.preset != "" {
					w.Header().Set("Cache-Control", tt.preset)
				}
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte("x"))
			}))

			w := serveRequest(h, http.MethodGet, "/")
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Cache-Control"))
		})
	}

	t.Run("implicit status", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("x"))
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "public", w.Header().Get("Cache-Control"))
	})
}

func TestEndpointCacheHeaders(t *testing.T) {
	h := newEndpoint(Options{Scopes: []string{"/docs"}}, noteService{}).Handler()

	tests := []struct {
		path string
		want string
	}{
		{"/docs/swagger.json", DocumentCacheControl},
		{"/docs/swagger.yaml", DocumentCacheControl},
		{"/docs/openapi3.json", DocumentCacheControl},
		{"/docs/index.html", DocumentCacheControl},
		{"/docs/index.css", AssetCacheControl},
		{"/docs/missing.js", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := serveRequest(h, http.MethodGet, tt.path)
			assert.Equal(t, tt.want, w.Header().Get("Cache-Control"))
		})
	}
}
