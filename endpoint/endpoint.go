package endpoint

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/vitalvas/swagdoc/swagger"
	"github.com/vitalvas/swagdoc/swaggerui"
)

// ErrAlreadyInitialized is returned by configuration methods called after
// the documents were built.
var ErrAlreadyInitialized = errors.New("endpoint: already initialized")

// Document and viewer file names served under every scope.
const (
	JSONFile     = "swagger.json"
	YAMLFile     = "swagger.yaml"
	OpenAPI3File = "openapi3.json"
)

// Options configures an Endpoint.
type Options struct {
	// Scopes are the base addresses documents are served under, e.g.
	// "/docs". Each scope gets its own cached document. Defaults to the
	// root scope.
	Scopes []string

	// DisableUI answers every viewer path with 404.
	DisableUI bool

	// MaxArchiveSize limits custom viewer archives. Zero means no limit.
	MaxArchiveSize int64

	Logger *slog.Logger
}

// Endpoint serves generated documents and the viewer over HTTP.
//
// Documents for every scope are built together on the first request (or
// an explicit Init). A failed build is reported to the caller and retried
// by the next request. Configuration methods must be called before that.
type Endpoint struct {
	cache  *swagger.Cache
	assets *swaggerui.Assets
	scopes []string
	opts   Options
	log    *slog.Logger

	mu          sync.Mutex
	initialized atomic.Bool
}

// New creates an endpoint documenting with b.
func New(b *swagger.Builder, opts Options) *Endpoint {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Endpoint{
		cache:  swagger.NewCache(b),
		assets: swaggerui.New(),
		scopes: normalizeScopes(opts.Scopes),
		opts:   opts,
		log:    log,
	}
}

// Cache returns the document cache.
func (e *Endpoint) Cache() *swagger.Cache {
	return e.cache
}

// Scopes returns the normalized scopes, longest first.
func (e *Endpoint) Scopes() []string {
	return append([]string(nil), e.scopes...)
}

// Configure sets the info, security definitions, and base path that
// replace the configured settings.
func (e *Endpoint) Configure(o swagger.Overrides) error {
	return e.configure(func() error {
		e.cache.Builder().SetOverrides(o)
		return nil
	})
}

// SetCustomArchive replaces the bundled viewer with a zip archive.
func (e *Endpoint) SetCustomArchive(r io.ReaderAt, size int64) error {
	return e.configure(func() error {
		return e.assets.SetArchive(r, size, e.opts.MaxArchiveSize)
	})
}

// SetCustomGetFile sets a viewer file lookup consulted before the archive.
func (e *Endpoint) SetCustomGetFile(fn swaggerui.GetFileFunc) error {
	return e.configure(func() error {
		e.assets.SetGetFile(fn)
		return nil
	})
}

func (e *Endpoint) configure(apply func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized.Load() {
		return ErrAlreadyInitialized
	}
	return apply()
}

// Init builds the documents of every scope. It is a no-op once it has
// succeeded.
func (e *Endpoint) Init() error {
	if e.initialized.Load() {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized.Load() {
		return nil
	}

	for _, scope := range e.scopes {
		if _, err := e.cache.Get(scope); err != nil {
			e.log.Error("document build failed", "scope", scope, "error", err)
			return err
		}
	}

	e.initialized.Store(true)
	e.log.Info("documents built", "scopes", len(e.scopes))
	return nil
}

// Register adds the document and viewer routes of every scope to r.
// Longer scopes are registered first so they win over their prefixes.
func (e *Endpoint) Register(r *mux.Router) {
	docs := cacheControlMiddleware(documentCacheRules, "")
	assets := cacheControlMiddleware(assetCacheRules, AssetCacheControl)
	get := []string{http.MethodGet, http.MethodHead}

	for _, scope := range e.scopes {
		r.Handle(scope+"/"+JSONFile, docs(http.HandlerFunc(e.serveJSON))).Methods(get...)
		r.Handle(scope+"/"+YAMLFile, docs(http.HandlerFunc(e.serveYAML))).Methods(get...)
		r.Handle(scope+"/"+OpenAPI3File, docs(http.HandlerFunc(e.serveOpenAPI3))).Methods(get...)

		redirect := e.redirect(scope)
		if scope != "" {
			r.HandleFunc(scope, redirect).Methods(get...)
		}
		r.HandleFunc(scope+"/", redirect).Methods(get...)

		r.Handle(scope+"/{content:.+}", assets(http.HandlerFunc(e.serveContent))).Methods(get...)
	}
}

// Middleware returns the panic recovery and request ID middlewares used by
// Handler, for routers that mount the endpoint next to other routes.
func (e *Endpoint) Middleware() []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{recoveryMiddleware(e.log), requestIDMiddleware}
}

// Handler returns a router serving only the endpoint.
func (e *Endpoint) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(e.Middleware()...)
	e.Register(r)
	return r
}

// entry selects the document closest to the request path. It returns nil
// when no document exists.
func (e *Endpoint) entry(w http.ResponseWriter, r *http.Request) (*swagger.Entry, bool) {
	if err := e.Init(); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}

	key := e.cache.Closest(r.URL.Path)
	entry, _ := e.cache.Lookup(key)
	return entry, true
}

func (e *Endpoint) serveJSON(w http.ResponseWriter, r *http.Request) {
	entry, ok := e.entry(w, r)
	if !ok {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	if entry == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeBody(w, r, entry.JSON)
}

func (e *Endpoint) serveYAML(w http.ResponseWriter, r *http.Request) {
	e.serveRendering(w, r, "application/x-yaml", (*swagger.Entry).YAML)
}

func (e *Endpoint) serveOpenAPI3(w http.ResponseWriter, r *http.Request) {
	e.serveRendering(w, r, "application/json", (*swagger.Entry).OpenAPI3)
}

func (e *Endpoint) serveRendering(w http.ResponseWriter, r *http.Request, contentType string, render func(*swagger.Entry) ([]byte, error)) {
	entry, ok := e.entry(w, r)
	if !ok {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	if entry == nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		return
	}

	data, err := render(entry)
	if err != nil {
		e.log.Error("document rendering failed", "scope", entry.Scope, "path", r.URL.Path, "error", err)
		http.Error(w, "failed to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	writeBody(w, r, data)
}

// redirect sends the bare viewer root to the index page with the address
// of the scope's JSON document.
func (e *Endpoint) redirect(scope string) http.HandlerFunc {
	target := scope + "/" + swaggerui.IndexFile + "?url=" + scope + "/" + JSONFile

	return func(w http.ResponseWriter, r *http.Request) {
		if e.opts.DisableUI {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (e *Endpoint) serveContent(w http.ResponseWriter, r *http.Request) {
	if e.opts.DisableUI {
		http.NotFound(w, r)
		return
	}

	name := mux.Vars(r)["content"]
	f, err := e.assets.Open(name)
	if err != nil {
		if !errors.Is(err, swaggerui.ErrNotFound) {
			e.log.Warn("viewer file lookup failed", "file", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Content.Close()

	w.Header().Set("Content-Type", f.ContentType)
	if f.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, f.Content); err != nil {
		e.log.Debug("viewer file write failed", "file", name, "error", err)
	}
}

func writeBody(w http.ResponseWriter, r *http.Request, data []byte) {
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

// normalizeScopes trims trailing slashes, drops duplicates, and orders
// scopes longest first. The root scope is "".
func normalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return []string{""}
	}

	seen := make(map[string]bool, len(scopes))
	var out []string
	for _, s := range scopes {
		s = strings.TrimRight(strings.TrimSpace(s), "/")
		if s != "" && !strings.HasPrefix(s, "/") {
			s = "/" + s
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
