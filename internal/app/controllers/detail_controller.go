package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursescope/coursescope/internal/app/models/dto"
	"github.com/coursescope/coursescope/internal/app/services"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/middleware"
)

// DetailController serves per-section enrichment records
type DetailController struct {
	detailService *services.DetailService
}

// NewDetailController creates a new DetailController
func NewDetailController(detailService *services.DetailService) *DetailController {
	return &DetailController{
		detailService: detailService,
	}
}

// CourseDetails returns the enrichment record of one section
// @Summary Get section details
// @Description Returns the cached enrichment record for a section, fetching it from the bulletin on a cache miss. Repeated calls for the same (group, key, srcdb) triple are served from the cache and are byte-identical. Srcdb falls back to the configured default term when omitted.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CourseDetailsRequest true "Section identifier"
// @Success 200 {object} dto.APIResponse{data=models.SectionDetail} "Section details"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Failure 502 {object} dto.APIResponse "Bulletin fetch or parse failure"
// @Router /course-details [post]
func (c *DetailController) CourseDetails(ctx *gin.Context) {
	var req dto.CourseDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	detail, err := c.detailService.GetOrFetch(ctx, bulletin.DetailRequest{
		Group:   req.Group,
		Key:     req.Key,
		Srcdb:   req.Srcdb,
		Matched: req.Matched,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}
