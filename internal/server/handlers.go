package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/repositories"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/tasks"
	"github.com/desertthunder/memegacha/internal/web"
)

// CatalogPath is where the page's catalog is published.
const CatalogPath = "/list/classed.json"

// AppOpts configures an [App].
type AppOpts struct {
	Catalog     *CatalogCache
	CatalogFile string // local file served at [CatalogPath]; empty serves the cached catalog as JSON
	SeenKey     string
	Cookies     CookieOptions
	NewRNG      func() tasks.RandomSource
	Logger      *log.Logger
}

// App holds the handlers of the web front end.
type App struct {
	catalog     *CatalogCache
	catalogFile string
	seenKey     string
	cookies     CookieOptions
	newRNG      func() tasks.RandomSource
	renderer    *web.Renderer
	logger      *log.Logger
}

// NewApp parses the page templates and creates the handlers.
func NewApp(opts AppOpts) (*App, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.NewRNG == nil {
		opts.NewRNG = tasks.NewRandomSource
	}
	if opts.SeenKey == "" {
		opts.SeenKey = repositories.DefaultSeenKey
	}

	return &App{
		catalog:     opts.Catalog,
		catalogFile: opts.CatalogFile,
		seenKey:     opts.SeenKey,
		cookies:     opts.Cookies,
		newRNG:      opts.NewRNG,
		renderer:    renderer,
		logger:      opts.Logger,
	}, nil
}

// Register adds the app's routes to router.
func (a *App) Register(router Router) {
	router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.handleIndex))
	router.Handle(http.MethodPost, "/roll", http.HandlerFunc(a.handleRoll))
	router.Handle(http.MethodPost, "/reset", http.HandlerFunc(a.handleReset))
	router.Handle(http.MethodGet, CatalogPath, http.HandlerFunc(a.handleCatalog))
	router.HandleFunc(http.MethodGet, "/healthz", a.handleHealth)
}

// NewHandler builds the full middleware stack around the app's routes.
func NewHandler(app *App, logger *log.Logger, rateLimit float64, burst int) http.Handler {
	router := NewBasicRouter()
	router.Use(
		RequestID(),
		RequestLogger(logger),
		Recoverer(logger),
		RateLimit(rateLimit, burst, http.MethodPost),
	)
	app.Register(router)
	return router
}

// visit is one request's view of the roller and its cookie storage.
type visit struct {
	roller  *tasks.Roller
	cookies *CookieStorage
	logger  *log.Logger
}

// newVisit rebuilds the visitor's roller from cookies and the shared catalog.
func (a *App) newVisit(r *http.Request) *visit {
	logger := a.logger
	if id := RequestIDFrom(r.Context()); id != "" {
		logger = shared.WithLogger(a.logger, "request_id", id)
	}

	catalog, loaded := a.catalog.Get(r.Context())
	if !loaded {
		logger.Debug("catalog unavailable", "error", a.catalog.Err())
	}

	cookies := NewCookieStorage(r, a.cookies)
	seen := newCompactSeenStorage(cookies, a.seenKey, catalog, logger)
	store := repositories.NewSeenStore(seen, a.seenKey, logger)
	roller := tasks.NewRoller(tasks.RollerOpts{Store: store, RNG: a.newRNG(), Logger: logger})

	roller.Hydrate()
	if loaded {
		roller.SetCatalog(catalog)
	}
	if title, ok, err := cookies.Get(CurrentKey); err == nil && ok {
		roller.Restore(title)
	}

	return &visit{roller: roller, cookies: cookies, logger: logger}
}

// commit persists the current selection and flushes cookies.
func (v *visit) commit(w http.ResponseWriter) {
	if current := v.roller.Current(); current != nil {
		if err := v.cookies.Set(CurrentKey, current.Title); err != nil {
			v.logger.Warn("failed to persist current selection", "error", err)
		}
	} else if v.roller.CatalogLoaded() {
		v.cookies.Delete(CurrentKey)
	}
	v.cookies.Commit(w)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	v := a.newVisit(r)

	if _, err := v.roller.EnsureCurrent(); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotReady):
			v.logger.Debug("catalog not loaded yet, showing placeholder")
		case errors.Is(err, shared.ErrExhausted):
			v.logger.Debug("every item seen, nothing to pick")
		default:
			v.logger.Error("initial pick failed", "error", err)
		}
	}
	v.commit(w)

	data := web.NewPageData(v.roller, noticeFromQuery(r))
	NoStore(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.renderer.Render(w, data); err != nil {
		v.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// noticeFromQuery maps the redirect markers set by the action handlers to a page alert.
func noticeFromQuery(r *http.Request) web.Notice {
	q := r.URL.Query()
	switch {
	case q.Get("exhausted") == "1":
		return web.ExhaustedNotice
	case q.Get("full") == "1":
		return web.StorageFullNotice
	default:
		return web.NoNotice
	}
}

func (a *App) handleRoll(w http.ResponseWriter, r *http.Request) {
	v := a.newVisit(r)

	_, err := v.roller.Roll()
	v.commit(w)

	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, shared.ErrExhausted):
		http.Redirect(w, r, "/?exhausted=1", http.StatusSeeOther)
	case errors.Is(err, shared.ErrPayloadTooLarge):
		v.logger.Warn("seen set no longer fits in cookies", "error", err)
		http.Redirect(w, r, "/?full=1", http.StatusSeeOther)
	case errors.Is(err, shared.ErrNotReady):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		v.logger.Error("roll failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	v := a.newVisit(r)

	_, err := v.roller.Reset()
	if err != nil && !errors.Is(err, shared.ErrNotReady) {
		v.logger.Error("reset failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	v.commit(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleCatalog(w http.ResponseWriter, r *http.Request) {
	NoStore(w)
	w.Header().Set("Content-Type", "application/json")

	if a.catalogFile != "" {
		data, err := os.ReadFile(a.catalogFile)
		if err != nil {
			a.logger.Error("failed to read catalog file", "path", a.catalogFile, "error", err)
			http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write(data)
		return
	}

	catalog, ok := a.catalog.Get(r.Context())
	if !ok {
		http.Error(w, "Catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := json.NewEncoder(w).Encode(catalog); err != nil {
		a.logger.Error("failed to encode catalog", "error", err)
	}
}

// handleHealth reports liveness and whether the catalog has loaded, without triggering a fetch.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok", "catalog": "loading"}
	if _, ok := a.catalog.Cached(); ok {
		body["catalog"] = "loaded"
	} else if err := a.catalog.Err(); err != nil {
		body["catalog_error"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}
