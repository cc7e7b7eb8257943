package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"saborify/middleware"
	"saborify/ratelim"
)

// handle registers fn behind mw and counts it under its route pattern.
func handle(router *httprouter.Router, h Handlers, method, path string, mw middleware.Middleware, fn httprouter.Handle) {
	router.Handle(method, path, h.Metrics.Route(path, mw(fn)))
}

func AddStateRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/state", public(h, rl), h.Home.GetState)
	handle(router, h, http.MethodGet, "/api/state/most-viewed", public(h, rl), h.Home.GetMostViewed)
	handle(router, h, http.MethodGet, "/api/state/top-rated", public(h, rl), h.Home.GetTopRated)
	handle(router, h, http.MethodGet, "/api/state/difficulties", public(h, rl), h.Home.GetDifficulties)
	handle(router, h, http.MethodPost, "/api/state/refresh", public(h, rl), h.Home.Refresh)
	handle(router, h, http.MethodPut, "/api/state/selection", public(h, rl), h.Home.SetSelection)
}

func AddRecipeRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/recipes", public(h, rl), h.Recipes.GetRecipes)
	handle(router, h, http.MethodPost, "/api/recipes", signedIn(h, rl), h.Recipes.CreateRecipe)
	handle(router, h, http.MethodPost, "/api/uploads/image", signedIn(h, rl), h.Recipes.UploadImage)
	handle(router, h, http.MethodGet, "/api/recipes/:id", public(h, rl), h.Recipes.GetRecipe)
	handle(router, h, http.MethodPut, "/api/recipes/:id", signedIn(h, rl), h.Recipes.UpdateRecipe)
	handle(router, h, http.MethodDelete, "/api/recipes/:id", signedIn(h, rl), h.Recipes.DeleteRecipe)
	handle(router, h, http.MethodGet, "/api/recipes/:id/print", public(h, rl), h.Recipes.PrintRecipe)
	handle(router, h, http.MethodGet, "/api/users/:id/recipes", public(h, rl), h.Recipes.GetUserRecipes)

	handle(router, h, http.MethodPost, "/api/ai/search", signedIn(h, rl), h.Recipes.SearchByIngredients)
	handle(router, h, http.MethodGet, "/api/ai/popular", public(h, rl), h.Recipes.PopularIngredients)
	handle(router, h, http.MethodPost, "/api/ai/suggest", public(h, rl), h.Recipes.SuggestIngredients)
	handle(router, h, http.MethodGet, "/api/meal-types", public(h, rl), h.Recipes.MealTypes)
}

func AddIngredientRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/ingredients", public(h, rl), h.Ingredients.GetIngredients)
	handle(router, h, http.MethodGet, "/api/ingredients/:id", public(h, rl), h.Ingredients.GetIngredient)
	handle(router, h, http.MethodGet, "/api/ingredients/:id/recipes", public(h, rl), h.Ingredients.GetIngredientRecipes)
	handle(router, h, http.MethodDelete, "/api/ingredients/:id", adminOnly(h, rl), h.Ingredients.DeleteIngredient)
	handle(router, h, http.MethodGet, "/api/allergens", public(h, rl), h.Ingredients.GetAllergens)
	handle(router, h, http.MethodGet, "/api/allergen-groups", public(h, rl), h.Ingredients.GetAllergenGroups)
}

func AddReviewsRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/recipes/:id/reviews", public(h, rl), h.Reviews.GetReviews)
	handle(router, h, http.MethodPost, "/api/recipes/:id/reviews", signedIn(h, rl), h.Reviews.AddReview)
	handle(router, h, http.MethodDelete, "/api/reviews/:id", adminOnly(h, rl), h.Reviews.DeleteReview)
}

func AddAuthRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodPost, "/api/auth/login", public(h, rl), h.Auth.Login)
	handle(router, h, http.MethodPost, "/api/auth/register", public(h, rl), h.Auth.Register)
	handle(router, h, http.MethodPost, "/api/auth/google", public(h, rl), h.Auth.Google)
	handle(router, h, http.MethodPost, "/api/auth/logout", public(h, rl), h.Auth.Logout)
	handle(router, h, http.MethodGet, "/api/auth/session", public(h, rl), h.Auth.Session)
}

func AddProfileRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/profile", signedIn(h, rl), h.Profile.GetProfile)
	handle(router, h, http.MethodPut, "/api/profile", signedIn(h, rl), h.Profile.UpdateProfile)
	handle(router, h, http.MethodPost, "/api/profile/token", signedIn(h, rl), h.Profile.CreateToken)
	handle(router, h, http.MethodGet, "/api/users", adminOnly(h, rl), h.Profile.GetUsers)
}

func AddFavoriteRoutes(router *httprouter.Router, h Handlers, rl *ratelim.RateLimiter) {
	handle(router, h, http.MethodGet, "/api/favorites", public(h, rl), h.Favorites.List)
	handle(router, h, http.MethodPost, "/api/favorites", public(h, rl), h.Favorites.Add)
	handle(router, h, http.MethodPost, "/api/favorites/toggle", public(h, rl), h.Favorites.Toggle)
	handle(router, h, http.MethodPost, "/api/favorites/contains", public(h, rl), h.Favorites.Contains)
	handle(router, h, http.MethodGet, "/api/favorites/print", public(h, rl), h.Favorites.Print)
	handle(router, h, http.MethodDelete, "/api/favorites/:id", public(h, rl), h.Favorites.Remove)
}

// AddSocketRoutes skips the rate limiter; one upgrade holds the connection
// open.
func AddSocketRoutes(router *httprouter.Router, h Handlers) {
	router.GET("/ws/state", h.Clients.Identify(h.Hub.Handler(func(r *http.Request) string {
		return middleware.ClientID(r.Context())
	})))
}
