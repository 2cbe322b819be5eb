package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// CatalogQuerier is the slice of the catalog repository the query paths use.
type CatalogQuerier interface {
	SearchSections(ctx context.Context, filter models.SectionSearchFilter, limit int) ([]models.SectionSearchRow, error)
	Status(ctx context.Context) (*models.CatalogStatus, error)
}

// CatalogService serves search and status queries over the current catalog
// snapshot. Reads are not blocked by a running refresh; they observe either
// the old snapshot or the new one, never a mix.
type CatalogService struct {
	repo        CatalogQuerier
	searchLimit int
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(repo CatalogQuerier, cfg *config.Config) *CatalogService {
	return &CatalogService{
		repo:        repo,
		searchLimit: cfg.Ingest.SearchLimit,
		logger:      logger.Component("catalog"),
	}
}

// Search runs a section search. At least one filter must be set; an
// unfiltered search would return the whole catalog.
func (s *CatalogService) Search(ctx context.Context, filter models.SectionSearchFilter) ([]models.SectionSearchRow, error) {
	if filter == (models.SectionSearchFilter{}) {
		return nil, apperrors.NewValidationError("at least one of code, title, crn, schd, campus_group must be provided")
	}

	results, err := s.repo.SearchSections(ctx, filter, s.searchLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Section search failed")
		return nil, fmt.Errorf("%w: section search", apperrors.ErrDatabaseOperation)
	}

	return results, nil
}

// Status returns the current catalog statistics.
func (s *CatalogService) Status(ctx context.Context) (*models.CatalogStatus, error) {
	status, err := s.repo.Status(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Catalog status query failed")
		return nil, fmt.Errorf("%w: catalog status", apperrors.ErrDatabaseOperation)
	}

	return status, nil
}
