package routes

import (
	"recipe-manager-api/handlers"
	"recipe-manager-api/logger"
	"recipe-manager-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router needs
type Deps struct {
	Handler     *handlers.Handler
	Auth        *middleware.Auth
	Metrics     *middleware.Metrics
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter builds the engine with the global middleware chain and all routes
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.Recovery(d.Logger),
		logger.GinMiddleware(d.Logger),
		middleware.CORS(d.CORSOrigins),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}
	SetupRoutes(r, d.Handler, d.Auth)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.Auth) {
	r.GET("/", h.Welcome)
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/users", h.Signup)
		public.POST("/auth/login", h.Login)
	}

	// ── Authenticated routes ───────────────────────────────────────
	api := r.Group("/api")
	api.Use(auth.Required(), h.ActiveUser())
	{
		api.GET("/profile", h.GetProfile)

		api.GET("/recipes", h.ListRecipes)
		api.POST("/recipes", h.CreateRecipe)
		api.GET("/recipes/:id", h.GetRecipe)
		api.PATCH("/recipes/:id", h.UpdateRecipe)
		api.DELETE("/recipes/:id", h.DeleteRecipe)
		api.PATCH("/recipes/:id/favorite", h.ToggleFavorite)
		api.POST("/recipes/:id/reviews", h.AddReview)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(auth.Required(), h.ActiveUser(), middleware.AdminRequired())
	{
		admin.GET("/users", h.AdminListUsers)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.GET("/admin/stats", h.AdminStats)
	}
}
