// Package api assembles the HTTP surface: middleware chain, handlers and routes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hszk-dev/vidtube/internal/api/handler"
	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
)

// Handlers groups the route handlers served under /v1.
type Handlers struct {
	Health       *handler.HealthHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Tweet        *handler.TweetHandler
	Playlist     *handler.PlaylistHandler
	Dashboard    *handler.DashboardHandler
}

// RouterConfig holds the cross-cutting dependencies of the router.
type RouterConfig struct {
	Logger *slog.Logger
	Auth   middleware.AuthConfig
	// RateLimiter throttles writes per actor. Nil disables rate limiting.
	RateLimiter cache.RateLimiter
}

// NewRouter builds the chi router.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Metrics)

	r.Get("/health", h.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.Auth))
		if cfg.RateLimiter != nil {
			r.Use(middleware.RateLimit(cfg.RateLimiter))
		}

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.Video.List)
			r.Post("/", h.Video.Publish)
			r.Route("/{videoID}", func(r chi.Router) {
				r.Get("/", h.Video.Get)
				r.Patch("/", h.Video.Update)
				r.Delete("/", h.Video.Delete)
				r.Patch("/publish", h.Video.TogglePublish)
				r.Post("/views", h.Video.RecordView)
				r.Get("/comments", h.Comment.List)
				r.Post("/comments", h.Comment.Add)
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Patch("/", h.Comment.Update)
			r.Delete("/", h.Comment.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Get("/videos", h.Like.LikedVideos)
			r.Post("/videos/{targetID}", h.Like.ToggleVideo)
			r.Post("/comments/{targetID}", h.Like.ToggleComment)
			r.Post("/tweets/{targetID}", h.Like.ToggleTweet)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/channels/{channelID}", h.Subscription.Toggle)
			r.Get("/channels/{channelID}/subscribers", h.Subscription.Subscribers)
			r.Get("/users/{userID}/channels", h.Subscription.SubscribedChannels)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Post("/", h.Tweet.Create)
			r.Get("/{tweetID}", h.Tweet.Get)
			r.Patch("/{tweetID}", h.Tweet.Update)
			r.Delete("/{tweetID}", h.Tweet.Delete)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Post("/", h.Playlist.Create)
			r.Route("/{playlistID}", func(r chi.Router) {
				r.Get("/", h.Playlist.Get)
				r.Patch("/", h.Playlist.Update)
				r.Delete("/", h.Playlist.Delete)
				r.Put("/videos/{videoID}", h.Playlist.AddVideo)
				r.Delete("/videos/{videoID}", h.Playlist.RemoveVideo)
			})
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/tweets", h.Tweet.ListByUser)
			r.Get("/playlists", h.Playlist.ListByUser)
		})

		r.Route("/dashboard/channels/{channelID}", func(r chi.Router) {
			r.Get("/stats", h.Dashboard.Stats)
			r.Get("/videos", h.Dashboard.Videos)
		})
	})

	return r
}
