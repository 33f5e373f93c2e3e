// Package middleware provides net/http middleware for viewkit servers.
//
// This package includes:
//   - OpenTelemetry tracing, one server span per request
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All three are plain func(http.Handler) http.Handler values and compose
// with any router:
//
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// When the router is chi, metrics and spans are labelled with the matched
// route pattern ("/items/{id}/toggle") rather than the raw path, which keeps
// label cardinality bounded.
package middleware
