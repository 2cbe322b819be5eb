package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// DetailFetcher is the slice of the bulletin client the detail lookup needs.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, req bulletin.DetailRequest) (*bulletin.DetailResult, []byte, error)
}

// DetailCache is the slice of the detail cache repository the lookup needs.
type DetailCache interface {
	Find(ctx context.Context, group, key, srcdb string) (*models.SectionDetail, error)
	Save(ctx context.Context, detail *models.SectionDetail) error
}

// DetailService resolves section detail lookups through the lazy cache.
type DetailService struct {
	fetcher      DetailFetcher
	cache        DetailCache
	defaultSrcdb string
	logger       zerolog.Logger
}

// NewDetailService creates a new detail service instance
func NewDetailService(fetcher DetailFetcher, cache DetailCache, cfg *config.Config) *DetailService {
	return &DetailService{
		fetcher:      fetcher,
		cache:        cache,
		defaultSrcdb: cfg.Ingest.DefaultSrcdb,
		logger:       logger.Component("details"),
	}
}

// GetOrFetch returns the detail record for a (group, key, srcdb) triple. On
// a cache hit the stored record is returned verbatim. On a miss one upstream
// call is made, the meeting markup is reduced to its pattern and date pair,
// and the full record is cached before the stored row is returned, so the
// first response matches every later cache hit exactly.
//
// Concurrent misses on the same triple may each fetch and overwrite; the
// overwrite is idempotent, so no single-flight guard is needed.
func (s *DetailService) GetOrFetch(ctx context.Context, req bulletin.DetailRequest) (*models.SectionDetail, error) {
	if req.Srcdb == "" {
		req.Srcdb = s.defaultSrcdb
	}

	cached, err := s.cache.Find(ctx, req.Group, req.Key, req.Srcdb)
	if err != nil {
		s.logger.Error().Err(err).Str("group", req.Group).Str("key", req.Key).Msg("Detail cache lookup failed")
		return nil, fmt.Errorf("%w: detail cache lookup", apperrors.ErrDatabaseOperation)
	}
	if cached != nil {
		s.logger.Debug().Str("group", req.Group).Str("key", req.Key).Msg("Detail cache hit")
		return cached, nil
	}

	result, raw, err := s.fetcher.FetchDetails(ctx, req)
	if err != nil {
		return nil, err
	}

	pattern, startDate, endDate := bulletin.ParseMeetingHTML(result.MeetingHTML.String())

	allSections := json.RawMessage(result.AllInGroup)
	if len(allSections) == 0 {
		allSections = json.RawMessage("[]")
	}

	detail := &models.SectionDetail{
		GroupKey:                 req.Group,
		CRNKey:                   req.Key,
		Srcdb:                    req.Srcdb,
		Description:              result.Description.String(),
		ClassNotes:               result.ClassNotes.String(),
		Hours:                    result.Hours.String(),
		Status:                   result.Status.String(),
		Component:                result.Component.String(),
		InstructionalMethod:      result.InstructionalMethod.String(),
		CampusLocation:           result.CampusLocation.String(),
		RegistrationRestrictions: result.RegistrationRestrictions.String(),
		MeetingHTML:              result.MeetingHTML.String(),
		MeetingPattern:           pattern,
		StartDate:                startDate,
		EndDate:                  endDate,
		DatesHTML:                result.DatesHTML.String(),
		AllSections:              allSections,
		DetailsJSON:              json.RawMessage(raw),
		CachedAt:                 time.Now().UTC(),
	}

	if err := s.cache.Save(ctx, detail); err != nil {
		s.logger.Error().Err(err).Str("group", req.Group).Str("key", req.Key).Msg("Detail cache write failed")
		return nil, fmt.Errorf("%w: detail cache write", apperrors.ErrDatabaseOperation)
	}

	s.logger.Info().Str("group", req.Group).Str("key", req.Key).Str("srcdb", req.Srcdb).Msg("Detail fetched and cached")

	// Serve the row as stored. A concurrent catalog replace could purge it
	// between the save and this read; the freshly built record covers that.
	stored, err := s.cache.Find(ctx, req.Group, req.Key, req.Srcdb)
	if err != nil {
		s.logger.Error().Err(err).Str("group", req.Group).Str("key", req.Key).Msg("Detail cache readback failed")
		return nil, fmt.Errorf("%w: detail cache lookup", apperrors.ErrDatabaseOperation)
	}
	if stored == nil {
		return detail, nil
	}

	return stored, nil
}
