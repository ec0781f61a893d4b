package interfaces

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// NewRouter wires the catalog routes, the health check and request logging.
// Paths are matched encoded so names containing a slash survive routing.
func NewRouter(catalog *CatalogHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter().UseEncodedPath()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	catalog.RegisterRoutes(router)
	router.Use(requestLogger(logger))

	return router
}

// WithCORS allows cross-origin GET requests from the given origins.
func WithCORS(next http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)
	return cors(next)
}

// Routes lists the registered route templates with their methods.
func Routes(router *mux.Router) []string {
	var routes []string
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, m := range methods {
			routes = append(routes, m+" "+path)
		}
		return nil
	})
	return routes
}

// requestLogger logs each request once through handlers.CustomLoggingHandler.
// The request id is taken from X-Request-ID or generated, then echoed back.
func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	formatter := func(_ io.Writer, p handlers.LogFormatterParams) {
		logger.Info("request",
			"request_id", p.Request.Header.Get(requestIDHeader),
			"method", p.Request.Method,
			"path", p.URL.Path,
			"status", p.StatusCode,
			"duration", time.Since(p.TimeStamp),
		)
	}

	return func(next http.Handler) http.Handler {
		logged := handlers.CustomLoggingHandler(io.Discard, next, formatter)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(requestIDHeader, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)
			logged.ServeHTTP(w, r)
		})
	}
}
