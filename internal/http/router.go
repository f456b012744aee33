package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Orders (server-mode relay)
		orders := api.Group("/orders")
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)

		// Catalog
		catalog := api.Group("/catalog")
		catalog.GET("/products", h.BrowseProducts)
		catalog.GET("/customers", h.ListCustomers)
		catalog.POST("/refresh", h.RefreshCatalog)

		// Table views
		views := api.Group("/views")
		views.POST("", h.CreateView)
		views.GET("/:id", h.GetView)
		views.DELETE("/:id", h.DeleteView)
		views.POST("/:id/sort", h.SortView)
		views.POST("/:id/filter", h.FilterView)
		views.POST("/:id/search", h.SearchView)
		views.POST("/:id/page", h.PageView)
		views.POST("/:id/clear", h.ClearView)
		views.GET("/:id/export", h.ExportView)

		// Order wizard
		wizard := api.Group("/wizard")
		wizard.POST("", h.CreateWizard)
		wizard.GET("/:id", h.GetWizard)
		wizard.DELETE("/:id", h.DeleteWizard)
		wizard.POST("/:id/items", h.AddWizardItem)
		wizard.PUT("/:id/items/:index", h.SetWizardQuantity)
		wizard.DELETE("/:id/items/:index", h.RemoveWizardItem)
		wizard.PUT("/:id/details", h.UpdateWizardDetails)
		wizard.POST("/:id/next", h.AdvanceWizard)
		wizard.POST("/:id/prev", h.RewindWizard)
		wizard.POST("/:id/submit", middleware.RequireAuth([]byte(env.JWTSecret)), h.SubmitWizard)
	}

	return r
}
