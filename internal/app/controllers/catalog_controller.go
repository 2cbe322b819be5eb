package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/app/models/dto"
	"github.com/coursescope/coursescope/internal/app/services"
	"github.com/coursescope/coursescope/internal/middleware"
)

// CatalogController serves section search and catalog status queries
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// SearchSections searches the stored sections
// @Summary Search sections
// @Description Searches stored sections by course code, title, CRN, schedule type or campus group. Code and title match as case-insensitive substrings; the remaining filters match exactly. At least one filter is required. Results are ordered by course code and section number.
// @Tags catalog
// @Accept json
// @Produce json
// @Param code query string false "Course code substring"
// @Param title query string false "Section or course title substring"
// @Param crn query string false "Exact CRN"
// @Param schd query string false "Exact schedule type"
// @Param campus_group query string false "Campus group" Enums(BROOKLYN, WSQ)
// @Success 200 {object} dto.APIResponse{data=dto.SectionSearchResponse} "Matching sections"
// @Failure 400 {object} dto.APIResponse "No search filter provided"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /search [get]
func (c *CatalogController) SearchSections(ctx *gin.Context) {
	var req dto.SectionSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	results, err := c.catalogService.Search(ctx, models.SectionSearchFilter{
		Code:        req.Code,
		Title:       req.Title,
		CRN:         req.CRN,
		Schd:        req.Schd,
		CampusGroup: req.CampusGroup,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SectionSearchResponse{
			Count:   len(results),
			Results: results,
		},
		Timestamp: time.Now(),
	})
}

// DatabaseStatus reports catalog counts and freshness
// @Summary Catalog status
// @Description Returns the stored course and section counts, a per-campus-group section breakdown and the time of the last successful refresh.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.CatalogStatus} "Catalog status"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /database-status [get]
func (c *CatalogController) DatabaseStatus(ctx *gin.Context) {
	status, err := c.catalogService.Status(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}
