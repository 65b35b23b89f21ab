package routes

import (
	"net/http"

	"github.com/vacationvibes/places-backend/internal/api/handlers"
	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler     *handlers.AuthHandler
	feedHandler     *handlers.FeedHandler
	reactionHandler *handlers.ReactionHandler
	commentHandler  *handlers.CommentHandler
	placeHandler    *handlers.PlaceHandler

	authService     *services.AuthService
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	feedHandler *handlers.FeedHandler,
	reactionHandler *handlers.ReactionHandler,
	commentHandler *handlers.CommentHandler,
	placeHandler *handlers.PlaceHandler,
	authService *services.AuthService,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		authHandler:     authHandler,
		feedHandler:     feedHandler,
		reactionHandler: reactionHandler,
		commentHandler:  commentHandler,
		placeHandler:    placeHandler,
		authService:     authService,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	requireAuth := middleware.AuthMiddleware(r.authService)

	// Auth endpoints
	r.mux.HandleFunc("POST /auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /auth/login", r.authHandler.Login)
	r.mux.Handle("GET /auth/me", requireAuth(http.HandlerFunc(r.authHandler.Me)))

	// Feed and reaction endpoints
	r.mux.Handle("GET /place/feed", requireAuth(http.HandlerFunc(r.feedHandler.GetFeed)))
	r.mux.Handle("POST /place/reaction", requireAuth(http.HandlerFunc(r.reactionHandler.CreateReaction)))
	r.mux.Handle("GET /place/reactions", requireAuth(http.HandlerFunc(r.reactionHandler.ListReactions)))

	// Comment endpoints
	r.mux.Handle("POST /place/{id}/comments", requireAuth(http.HandlerFunc(r.commentHandler.CreateComment)))
	r.mux.HandleFunc("GET /place/{id}/comments", r.commentHandler.ListComments)
	r.mux.Handle("DELETE /place/comments/{id}", requireAuth(http.HandlerFunc(r.commentHandler.DeleteComment)))

	// Place catalog endpoints
	r.mux.HandleFunc("GET /api/places", r.placeHandler.ListPlaces)
	r.mux.HandleFunc("GET /api/places/search", r.placeHandler.SearchPlaces)
	r.mux.HandleFunc("GET /api/places/{id}", r.placeHandler.GetPlace)
	r.mux.HandleFunc("POST /api/places", r.placeHandler.CreatePlace)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
