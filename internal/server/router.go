package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/vedran77/chirp/internal/metrics"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/http/handlers"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
	"github.com/vedran77/chirp/internal/transport/ws"
)

type Deps struct {
	Logger      zerolog.Logger
	Auth        *service.AuthService
	Tweets      *service.TweetService
	Store       repository.Pinger
	Hub         *ws.Hub
	CORSOrigins []string
}

// NewRouter mounts every route on a chi router.
func NewRouter(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.Auth)
	tweetHandler := handlers.NewTweetHandler(d.Tweets)
	healthHandler := handlers.NewHealthHandler(d.Store)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS(d.CORSOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Route("/tweets", func(r chi.Router) {
		r.Post("/", tweetHandler.Create)
		r.Delete("/", tweetHandler.Delete)
		r.Get("/all/{token}", tweetHandler.List)
		r.Get("/trends/{token}", tweetHandler.Trends)
		r.Get("/hashtag/{token}/{query}", tweetHandler.SearchHashtag)
		r.Put("/like", tweetHandler.ToggleLike)
	})

	if d.Hub != nil {
		r.Get("/ws", ws.ServeWS(d.Hub, d.Auth, d.CORSOrigins))
	}

	return r
}
