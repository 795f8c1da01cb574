package api

import (
	"alcyxob/studio-admin/internal/logging"
	"alcyxob/studio-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with request ID, request logging and
// recovery middleware and registers all routes.
func NewRouter(
	catalogService service.CatalogService,
	rosterService service.RosterService,
	exportService service.ExportService,
) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(logging.NewModuleLogger("http")))
	router.Use(gin.Recovery())

	SetupRoutes(router, catalogService, rosterService, exportService)
	return router
}

func SetupRoutes(
	router *gin.Engine,
	catalogService service.CatalogService,
	rosterService service.RosterService,
	exportService service.ExportService,
) {
	planHandler := NewPlanHandler(catalogService)
	clientHandler := NewClientHandler(rosterService)
	exportHandler := NewExportHandler(exportService)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		subscriptions := apiV1.Group("/subscriptions")
		{
			subscriptions.GET("", planHandler.ListPlans)
			subscriptions.GET("/:id", planHandler.GetPlan)
			subscriptions.POST("", planHandler.CreatePlan)
			subscriptions.PUT("/:id", planHandler.ReplacePlan)
			subscriptions.DELETE("/:id", planHandler.DeletePlan)
		}

		clients := apiV1.Group("/clients")
		{
			clients.GET("", clientHandler.ListClients)
			clients.GET("/:id", clientHandler.GetClient)
			clients.POST("", clientHandler.CreateClient)
			clients.PUT("/:id", clientHandler.ReplaceClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			// stateless; the form posts the result back with the client
			clients.POST("/selection/toggle", clientHandler.ToggleSelection)
		}

		apiV1.POST("/exports", exportHandler.CreateExport)
	}
}
