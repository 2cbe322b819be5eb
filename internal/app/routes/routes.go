package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursescope/coursescope/internal/app/controllers"
	"github.com/coursescope/coursescope/internal/app/models/dto"
	"github.com/coursescope/coursescope/internal/db"
)

// SetupRouter configures all application routes. Paths are kept flat to
// stay wire-compatible with existing clients of the catalog API.
func SetupRouter(
	router *gin.Engine,
	ingestController *controllers.IngestController,
	catalogController *controllers.CatalogController,
	detailController *controllers.DetailController,
	database *db.PostgresDB,
) {
	// Catalog refresh
	router.POST("/update-database", ingestController.UpdateDatabase)
	router.POST("/update-database-simple", ingestController.UpdateDatabaseSimple)

	// Catalog queries
	router.GET("/search", catalogController.SearchSections)
	router.GET("/database-status", catalogController.DatabaseStatus)
	router.POST("/course-details", detailController.CourseDetails)

	// Health check: liveness plus a database ping
	router.GET("/health", func(c *gin.Context) {
		if err := database.Pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database is unreachable")))
			return
		}
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger and pprof routes are set up in bootstrap.go already
}
