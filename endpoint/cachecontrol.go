package endpoint

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// Cache-Control values of the endpoint responses. Documents may change
// between processes, viewer assets do not.
const (
	DocumentCacheControl = "no-cache"
	AssetCacheControl    = "public, max-age=3600"
)

// cacheRule maps a Content-Type prefix to a Cache-Control value.
type cacheRule struct {
	contentType string
	value       string
}

var (
	documentCacheRules = []cacheRule{
		{contentType: "application/json", value: DocumentCacheControl},
		{contentType: "application/x-yaml", value: DocumentCacheControl},
	}

	// The index page embeds the document address and is revalidated.
	assetCacheRules = []cacheRule{
		{contentType: "text/html", value: DocumentCacheControl},
	}
)

// cacheControlMiddleware sets Cache-Control on successful responses from
// the first rule matching the response Content-Type, or fallback. Headers
// set by the handler are kept.
func cacheControlMiddleware(rules []cacheRule, fallback string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, rules: rules, fallback: fallback}, r)
		})
	}
}

type cacheControlWriter struct {
	http.ResponseWriter
	rules       []cacheRule
	fallback    string
	wroteHeader bool
}

func (cw *cacheControlWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	h := cw.Header()
	if code < http.StatusBadRequest && h.Get("Cache-Control") == "" {
		if v := cw.match(strings.ToLower(h.Get("Content-Type"))); v != "" {
			h.Set("Cache-Control", v)
		}
	}

	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheControlWriter) match(contentType string) string {
	for _, rule := range cw.rules {
		if strings.HasPrefix(contentType, rule.contentType) {
			return rule.value
		}
	}
	return cw.fallback
}

func (cw *cacheControlWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter.
func (cw *cacheControlWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
