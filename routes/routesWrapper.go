package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/auth"
	"saborify/favorites"
	"saborify/home"
	"saborify/hub"
	"saborify/ingredients"
	"saborify/metrics"
	"saborify/middleware"
	"saborify/profile"
	"saborify/ratelim"
	"saborify/recipes"
	"saborify/reviews"
)

// Handlers is everything the router dispatches to.
type Handlers struct {
	Clients     *middleware.Clients
	Home        *home.Handler
	Recipes     *recipes.Handler
	Ingredients *ingredients.Handler
	Reviews     *reviews.Handler
	Auth        *auth.Handler
	Profile     *profile.Handler
	Favorites   *favorites.Handler
	Hub         *hub.Hub
	Metrics     *metrics.Collector
}

func RoutesWrapper(router *httprouter.Router, h Handlers, rateLimiter *ratelim.RateLimiter) {
	AddStateRoutes(router, h, rateLimiter)
	AddRecipeRoutes(router, h, rateLimiter)
	AddIngredientRoutes(router, h, rateLimiter)
	AddReviewsRoutes(router, h, rateLimiter)
	AddAuthRoutes(router, h, rateLimiter)
	AddProfileRoutes(router, h, rateLimiter)
	AddFavoriteRoutes(router, h, rateLimiter)
	AddSocketRoutes(router, h)

	router.Handler(http.MethodGet, "/metrics", h.Metrics.Handler())
}

// public: identified and rate limited.
func public(h Handlers, rl *ratelim.RateLimiter) middleware.Middleware {
	return middleware.Chain(h.Clients.Identify, rl.Limit)
}

// signedIn additionally requires a stored session.
func signedIn(h Handlers, rl *ratelim.RateLimiter) middleware.Middleware {
	return middleware.Chain(h.Clients.Identify, rl.Limit, h.Clients.RequireSession)
}

func adminOnly(h Handlers, rl *ratelim.RateLimiter) middleware.Middleware {
	return middleware.Chain(h.Clients.Identify, rl.Limit, h.Clients.RequireSession, middleware.RequireAdmin)
}
