package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cedra-backend/internal/handler/api"
	"cedra-backend/internal/handler/middleware"
	"cedra-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Company  *api.CompanyHandler
	Address  *api.AddressHandler
	Product  *api.ProductHandler
	Checkout *api.CheckoutHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
	registry *prometheus.Registry,
) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, cfg, handlers, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	registry *prometheus.Registry,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	loginLimiter := middleware.NewLoginRateLimiter(cfg.RateLimit)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/signup", Handler: h.Auth.Signup, Mw: []gin.HandlerFunc{loginLimiter.Middleware()}},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{loginLimiter.Middleware()}},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
				{Method: http.MethodDelete, Path: "/me", Handler: h.Auth.DeleteAccount},
				{Method: http.MethodGet, Path: "/admin-only", Handler: h.Auth.AdminOnly, Mw: []gin.HandlerFunc{authMiddleware.RequireAdmin()}},
				{Method: http.MethodGet, Path: "/company-admin", Handler: h.Auth.CompanyAdminOnly, Mw: []gin.HandlerFunc{authMiddleware.RequireCompanyAdmin()}},
			})
		}

		company := apiGroup.Group("/company")
		company.Use(authMiddleware.RequireAuth())
		{
			addRoutes(company, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Company.Me},
			})

			companyAdmin := company.Group("")
			companyAdmin.Use(authMiddleware.RequireCompanyAdmin())
			addRoutes(companyAdmin, []route{
				{Method: http.MethodPost, Path: "/invite", Handler: h.Company.Invite},
				{Method: http.MethodPost, Path: "/users/:id/reset-password", Handler: h.Company.ResetMemberPassword},
			})
		}

		addresses := apiGroup.Group("/addresses")
		addresses.Use(authMiddleware.RequireAuth())
		{
			addRoutes(addresses, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: h.Address.ListMine},
				{Method: http.MethodPost, Path: "", Handler: h.Address.Create},
			})
		}

		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.List, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/search", Handler: h.Product.Search, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			})

			productAdmin := products.Group("")
			productAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(productAdmin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Product.Create},
			})
		}

		categories := apiGroup.Group("/categories")
		{
			addRoutes(categories, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Product.Categories},
				{Method: http.MethodGet, Path: "/:id/subcategories", Handler: h.Product.Subcategories},
			})
		}

		// Guest checkout: intents are created before any account exists.
		checkout := apiGroup.Group("/checkout")
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "/create-payment-intent", Handler: h.Checkout.CreatePaymentIntent},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
