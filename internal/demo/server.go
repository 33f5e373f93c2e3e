package demo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/host"
	"github.com/vango-dev/viewkit/pkg/middleware"
)

// Handler returns the application's HTTP routes.
//
//	GET  /                    the page
//	POST /items               add an item (form field "title")
//	POST /items/{id}/toggle   flip an item's done flag
//	POST /complete-all        mark every item done
//	POST /title               rename the list (form field "title")
//	GET  /ws                  live updates
//	GET  /metrics             Prometheus metrics
//
// Form posts redirect back to / on success. The handler is built once, so
// repeated calls share one set of HTTP metrics.
func (a *App) Handler() http.Handler {
	a.handlerOnce.Do(func() {
		a.handler = a.routes()
	})
	return a.handler
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.OpenTelemetry())
	r.Use(middleware.Prometheus(
		middleware.WithNamespace(a.namespace),
		middleware.WithRegistry(a.registry),
	))

	r.Get("/", a.handleIndex)
	r.Post("/items", a.handleAddItem)
	r.Post("/items/{id}/toggle", a.handleToggle)
	r.Post("/complete-all", a.handleCompleteAll)
	r.Post("/title", a.handleTitle)
	r.Get("/ws", a.live.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return r
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.RenderPage(w); err != nil {
		a.logger.Error("render page failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (a *App) handleAddItem(w http.ResponseWriter, r *http.Request) {
	_, err := a.AddItem(r.FormValue("title")).Run(r.Context())
	a.finish(w, r, err)
}

func (a *App) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	_, err = a.Toggle(id).Run(r.Context())
	a.finish(w, r, err)
}

func (a *App) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	_, err := effect.Void(a.CompleteAll()).Run(r.Context())
	a.finish(w, r, err)
}

func (a *App) handleTitle(w http.ResponseWriter, r *http.Request) {
	_, err := a.SetTitle(r.FormValue("title")).Run(r.Context())
	a.finish(w, r, err)
}

// finish redirects to the page on success and maps err to a status code.
func (a *App) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrEmptyTitle):
		status = http.StatusBadRequest
	case errors.Is(err, ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, host.ErrUnmounted), errors.Is(err, host.ErrQueueFull):
		status = http.StatusServiceUnavailable
	default:
		a.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), status)
}
