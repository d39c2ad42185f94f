package routes

import (
	"net/http"

	"storefront/configs"
	"storefront/controllers"
	"storefront/middlewares"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the process-wide handles the HTTP layer is built from.
// Cache and Events may be nil.
type Dependencies struct {
	Config   *configs.Config
	DB       *gorm.DB
	Sessions services.SessionStore
	Cache    services.RankingCache
	Events   services.EventPublisher
	OTP      services.OTPVerifier
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	productRepo := repository.NewProductRepository(deps.DB)
	cartRepo := repository.NewCartRepository(deps.DB)
	orderRepo := repository.NewOrderRepository(deps.DB)

	// Services
	authSvc := services.NewAuthService(deps.DB, userRepo, deps.Sessions, deps.OTP, cfg.JWTSecret, cfg.JWTTTL)
	productSvc := services.NewProductService(productRepo, orderRepo, deps.Cache)
	cartSvc := services.NewCartService(deps.DB, cartRepo, productRepo)
	orderSvc := services.NewOrderService(deps.DB, orderRepo, cartRepo, deps.Events, deps.Cache)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	requireAuth := middlewares.AuthMiddleware(cfg.JWTSecret, deps.Sessions, authSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/login", middlewares.LoginRateLimiter(cfg.LoginRate, cfg.LoginBurst), authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", requireAuth)
	{
		aAuth.POST("/logout", authCtrl.Logout)
		aAuth.GET("/user", authCtrl.Me)
		aAuth.PATCH("/user", authCtrl.UpdateMe)
	}

	// Catalog (public)
	r.GET("/products", productCtrl.List)
	r.GET("/products/most_bought", productCtrl.MostBought)
	r.GET("/products/:id", productCtrl.Detail)

	// Catalog (staff)
	staff := r.Group("/products", requireAuth, middlewares.StaffOnly())
	{
		staff.POST("", productCtrl.Create)
		staff.PATCH("/:id", productCtrl.Update)
	}

	// Cart (user)
	cart := r.Group("/cart", requireAuth)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("", cartCtrl.Add)
		cart.DELETE("/clear", cartCtrl.Clear)
		cart.GET("/:id", cartCtrl.Detail)
		cart.PUT("/:id", cartCtrl.SetQty)
		cart.PATCH("/:id", cartCtrl.SetQty)
		cart.DELETE("/:id", cartCtrl.RemoveItem)
		cart.POST("/:id/update_quantity", cartCtrl.UpdateQty)
	}

	// Orders (user)
	orders := r.Group("/orders", requireAuth)
	{
		orders.GET("", orderCtrl.ListForMe)
		orders.POST("", orderCtrl.Create)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/cancel", orderCtrl.Cancel)
	}
}
