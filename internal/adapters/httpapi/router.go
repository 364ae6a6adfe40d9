package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/ports/out/idempotency"
)

type RouterOptions struct {
	Logger zerolog.Logger
	Cookie CookieOptions

	// Idempotency enables Idempotency-Key handling on POST /api/trips when set.
	Idempotency idempotency.Store
}

// NewRouter constructs the HTTP router: HTML pages for the three screens and
// a JSON API over the same session operations.
func NewRouter(mgr *session.Manager, opts RouterOptions) http.Handler {
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = "fp_session"
	}
	logger := opts.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	// Health and static assets never start a session.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", staticHandler())

	pages := pageHandlers{log: logger}
	api := apiHandlers{log: logger, idem: opts.Idempotency}

	r.Group(func(r chi.Router) {
		r.Use(NewSessionMiddleware(mgr, opts.Cookie, logger))

		r.Get("/", withSession(logger, pages.index))
		r.Post("/navigate", withSession(logger, pages.navigate))
		r.Post("/search", withSession(logger, pages.search))

		r.Route("/api", func(r chi.Router) {
			r.Get("/session", withSession(logger, api.getSession))
			r.Patch("/form", withSession(logger, api.patchForm))
			r.Put("/form", withSession(logger, api.putForm))
			r.Put("/view", withSession(logger, api.putView))
			r.Get("/trips", withSession(logger, api.listTrips))
			r.Post("/trips", withSession(logger, api.createTrip))
			r.Get("/companions", withSession(logger, api.listCompanions))
		})
	})
	return r
}
