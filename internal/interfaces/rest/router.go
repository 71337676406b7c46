package rest

import (
	"net/http"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/internal/infrastructure/metrics"
	"github.com/christoffels/menu/internal/interfaces/middleware"
	"github.com/christoffels/menu/pkg/versioning"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every API route registered.
// A nil collector disables request metrics and the /metrics endpoint.
func NewRouter(svcMgr *services.ServiceManager, corsOrigins []string, collector *metrics.Collector) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.Cors(corsOrigins...))
	if collector != nil {
		router.Use(collector.Middleware())
		router.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"server": "golang",
		})
	})

	authHandler := NewAuthHandler(svcMgr)
	menuHandler := NewMenuHandler(svcMgr)
	basketHandler := NewBasketHandler(svcMgr)

	requireAuth := middleware.RequireAuth(svcMgr.Auth)
	optionalAuth := middleware.OptionalAuth(svcMgr.Auth)
	requireOwner := middleware.RequireOwner()

	api := router.Group("/api")
	api.Use(versioning.Middleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetMe)
			auth.GET("/users", requireAuth, requireOwner, authHandler.GetUsers)
		}

		// Browsing is public; mutations resolve permissions from the session user
		menu := api.Group("/menu")
		{
			menu.GET("/items", optionalAuth, menuHandler.ListItems)
			menu.GET("/items/:id", optionalAuth, menuHandler.GetItem)
			menu.POST("/items", requireAuth, menuHandler.CreateItem)
			menu.PATCH("/items/:id", requireAuth, menuHandler.UpdateItem)
			menu.DELETE("/items/:id", requireAuth, menuHandler.DeleteItem)
			menu.GET("/averages", menuHandler.GetAverages)
			menu.GET("/courses", menuHandler.GetCourses)
		}

		basket := api.Group("/basket")
		basket.Use(requireAuth)
		{
			basket.GET("", basketHandler.GetBasket)
			basket.DELETE("", basketHandler.ClearBasket)
			basket.POST("/items", basketHandler.AddItem)
			basket.PATCH("/items/:id", basketHandler.UpdateQuantity)
			basket.DELETE("/items/:id", basketHandler.RemoveItem)
		}
	}

	return router
}
