package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"skillfund/internal/http/handlers"
	mw "skillfund/internal/middleware"
)

// Options carries the middleware knobs the router needs.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   mw.CountryLookup
}

func NewRouter(app *handlers.App, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		mw.Country(opts.CountryLookup),
		mw.Logger(logger),
		mw.CORS(opts.AllowedOrigins),
		mw.RateLimit(opts.RateLimitPerMin, time.Minute),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/learners", func(r chi.Router) {
		r.Get("/explore", app.LearnersExplore)
		r.Post("/apply", app.LearnersApply)
		r.Get("/{id}", app.LearnersGet)
	})

	r.Route("/investments", func(r chi.Router) {
		r.Post("/", app.InvestmentsCreate)
		r.Get("/portfolio/{investor_id}", app.InvestmentsPortfolio)
	})

	r.Get("/notifications/{user_id}", app.NotificationsList)

	r.Route("/forum/posts", func(r chi.Router) {
		r.Get("/", app.ForumList)
		r.Post("/", app.ForumCreate)
		r.Post("/{id}/like", app.ForumLike)
		r.Delete("/{id}", app.ForumDelete)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
		r.Post("/logout", app.AuthLogout)
	})

	return r
}
