package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursescope/coursescope/internal/app/models/dto"
	"github.com/coursescope/coursescope/internal/app/services"
	"github.com/coursescope/coursescope/internal/middleware"
)

// IngestController handles catalog refresh operations
type IngestController struct {
	ingestService *services.IngestService
}

// NewIngestController creates a new IngestController
func NewIngestController(ingestService *services.IngestService) *IngestController {
	return &IngestController{
		ingestService: ingestService,
	}
}

// UpdateDatabase runs a full catalog refresh cycle
// @Summary Refresh the course catalog
// @Description Fetches every configured campus partition from the bulletin, normalizes the records and atomically replaces the stored catalog. The cycle is skipped when the catalog is younger than the staleness threshold, unless force is set. The request body is optional; omitted fields fall back to the configured defaults.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest false "Refresh overrides"
// @Success 200 {object} dto.APIResponse{data=models.RefreshOutcome} "Refresh outcome"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "A refresh cycle is already running"
// @Failure 500 {object} dto.APIResponse "Catalog replace transaction failed"
// @Failure 502 {object} dto.APIResponse "Bulletin fetch or parse failure"
// @Router /update-database [post]
func (c *IngestController) UpdateDatabase(ctx *gin.Context) {
	var req dto.RefreshRequest
	// The body is entirely optional; only bind when one was sent.
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.HandleValidationError(err)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	outcome, err := c.ingestService.Refresh(ctx, services.RefreshParams{
		Srcdb:  req.Srcdb,
		Career: req.Career,
		Camps:  req.Camps,
		Force:  req.Force,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      outcome,
		Timestamp: time.Now(),
	})
}

// UpdateDatabaseSimple runs a refresh cycle with the configured defaults
// @Summary Refresh the course catalog with defaults
// @Description Runs a refresh cycle using the configured default term, career and campus partitions. Any request body is ignored.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.RefreshOutcome} "Refresh outcome"
// @Failure 409 {object} dto.APIResponse "A refresh cycle is already running"
// @Failure 500 {object} dto.APIResponse "Catalog replace transaction failed"
// @Failure 502 {object} dto.APIResponse "Bulletin fetch or parse failure"
// @Router /update-database-simple [post]
func (c *IngestController) UpdateDatabaseSimple(ctx *gin.Context) {
	outcome, err := c.ingestService.Refresh(ctx, services.RefreshParams{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      outcome,
		Timestamp: time.Now(),
	})
}
