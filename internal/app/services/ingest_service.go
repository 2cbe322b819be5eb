package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/app/repositories"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/helpers"
	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// PartitionFetcher fetches one partition's raw records from the upstream
// feed, persisting the raw document on the way.
type PartitionFetcher interface {
	SearchPartition(ctx context.Context, srcdb, career, camp string) (*bulletin.PartitionResult, error)
}

// CatalogStore is the slice of the catalog repository a refresh cycle needs.
type CatalogStore interface {
	LastRefreshedAt(ctx context.Context) (time.Time, error)
	ReplaceCatalog(ctx context.Context, courses []models.Course, sections []models.Section, refreshedAt time.Time) (int64, int64, error)
}

// RefreshParams are the caller-supplied knobs of one refresh cycle. Empty
// fields fall back to the configured defaults.
type RefreshParams struct {
	Srcdb  string
	Career string
	Camps  []string
	Force  bool
}

// IngestService runs catalog refresh cycles: staleness gate, bounded
// concurrent partition fetch, normalization, and the atomic full replace.
type IngestService struct {
	fetcher       PartitionFetcher
	store         CatalogStore
	minInterval   time.Duration
	workers       int
	defaultSrcdb  string
	defaultCareer string
	defaultCamps  []string
	running       sync.Mutex
	logger        zerolog.Logger
}

// NewIngestService creates a new ingest service instance
func NewIngestService(fetcher PartitionFetcher, store CatalogStore, cfg *config.Config) *IngestService {
	return &IngestService{
		fetcher:       fetcher,
		store:         store,
		minInterval:   helpers.ParseDuration(cfg.Ingest.MinRefreshInterval, 24*time.Hour),
		workers:       cfg.Ingest.FetchWorkers,
		defaultSrcdb:  cfg.Ingest.DefaultSrcdb,
		defaultCareer: cfg.Ingest.DefaultCareer,
		defaultCamps:  cfg.Ingest.DefaultCamps,
		logger:        logger.Component("ingest"),
	}
}

// Refresh runs one full refresh cycle and reports what it did. Only one
// cycle may run at a time; a concurrent call fails immediately with
// apperrors.ErrRefreshInProgress instead of queueing behind the running one.
//
// A cycle either skips (catalog fresh enough and no force), succeeds with
// every requested partition loaded, or fails without touching the store.
// There is no partial refresh from a subset of partitions.
func (s *IngestService) Refresh(ctx context.Context, params RefreshParams) (*models.RefreshOutcome, error) {
	if !s.running.TryLock() {
		return nil, apperrors.NewCustomError(apperrors.ErrRefreshInProgress, "another refresh cycle is already running")
	}
	defer s.running.Unlock()

	srcdb := params.Srcdb
	if srcdb == "" {
		srcdb = s.defaultSrcdb
	}
	career := params.Career
	if career == "" {
		career = s.defaultCareer
	}
	camps := params.Camps
	if len(camps) == 0 {
		camps = s.defaultCamps
	}

	cycleID := uuid.New().String()
	log := s.logger.With().Str("cycle", cycleID).Str("srcdb", srcdb).Logger()

	lastRefresh, err := s.store.LastRefreshedAt(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not read the last refresh time")
		return nil, fmt.Errorf("%w: reading last refresh time", apperrors.ErrDatabaseOperation)
	}

	decision := repositories.EvaluateStaleness(lastRefresh, time.Now(), s.minInterval, params.Force)
	if !decision.Proceed {
		log.Info().
			Float64("elapsedHours", decision.ElapsedHours).
			Float64("remainingHours", decision.RemainingHours).
			Msg("Catalog is fresh enough, refresh skipped")
		return &models.RefreshOutcome{
			CycleID:        cycleID,
			Status:         models.RefreshStatusSkipped,
			Srcdb:          srcdb,
			ElapsedHours:   decision.ElapsedHours,
			RemainingHours: decision.RemainingHours,
		}, nil
	}

	log.Info().Strs("camps", camps).Bool("force", params.Force).Msg("Refresh cycle started")

	results, err := s.fetchPartitions(ctx, srcdb, career, camps)
	if err != nil {
		log.Error().Err(err).Msg("Refresh cycle aborted")
		return nil, err
	}

	// Partitions are normalized and loaded in request order so that
	// duplicate course codes resolve identically on every run.
	var (
		courses       []models.Course
		sections      []models.Section
		snapshotPaths = make([]string, 0, len(results))
	)
	for _, result := range results {
		partCourses, partSections := bulletin.Normalize(result.Records, result.CampusGroup)
		courses = append(courses, partCourses...)
		sections = append(sections, partSections...)
		snapshotPaths = append(snapshotPaths, result.SnapshotPath)
	}

	coursesInserted, sectionsInserted, err := s.store.ReplaceCatalog(ctx, courses, sections, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("Catalog replace failed, previous snapshot kept")
		return nil, err
	}

	log.Info().
		Int64("courses", coursesInserted).
		Int64("sections", sectionsInserted).
		Msg("Catalog refreshed")

	return &models.RefreshOutcome{
		CycleID:          cycleID,
		Status:           models.RefreshStatusSuccess,
		Srcdb:            srcdb,
		CoursesInserted:  coursesInserted,
		SectionsInserted: sectionsInserted,
		SnapshotPaths:    snapshotPaths,
	}, nil
}

// fetchPartitions fetches every partition through a bounded worker pool.
// Results come back in request order regardless of completion order. If any
// partition fails, the whole fetch fails with the error of the
// earliest-requested failing partition.
func (s *IngestService) fetchPartitions(ctx context.Context, srcdb, career string, camps []string) ([]*bulletin.PartitionResult, error) {
	results := make([]*bulletin.PartitionResult, len(camps))
	errs := make([]error, len(camps))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, camp := range camps {
		wg.Add(1)
		go func(i int, camp string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = s.fetcher.SearchPartition(ctx, srcdb, career, camp)
		}(i, camp)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
