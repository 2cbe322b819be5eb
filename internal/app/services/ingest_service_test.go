package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
)

type fakeFetcher struct {
	mu        sync.Mutex
	calls     map[string]int
	gotSrcdb  string
	gotCareer string

	inFlight    int32
	maxInFlight int32

	delay     time.Duration
	delays    map[string]time.Duration
	block     chan struct{}
	onStart   func()
	failCamps map[string]error
	records   map[string][]bulletin.SectionRecord
}

func (f *fakeFetcher) SearchPartition(ctx context.Context, srcdb, career, camp string) (*bulletin.PartitionResult, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		prev := atomic.LoadInt32(&f.maxInFlight)
		if cur <= prev || atomic.CompareAndSwapInt32(&f.maxInFlight, prev, cur) {
			break
		}
	}

	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[camp]++
	f.gotSrcdb = srcdb
	f.gotCareer = career
	f.mu.Unlock()

	if f.onStart != nil {
		f.onStart()
	}
	if f.block != nil {
		<-f.block
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if d, ok := f.delays[camp]; ok {
		time.Sleep(d)
	}

	if err, ok := f.failCamps[camp]; ok {
		return nil, err
	}

	return &bulletin.PartitionResult{
		Camp:         camp,
		CampusGroup:  bulletin.CampusGroupFor(camp),
		Records:      f.records[camp],
		SnapshotPath: "/data/raw/" + camp + ".json",
	}, nil
}

type fakeStore struct {
	mu             sync.Mutex
	lastRefresh    time.Time
	lastErr        error
	replaceErr     error
	replaceCalls   int
	gotCourses     []models.Course
	gotSections    []models.Section
	gotRefreshedAt time.Time
}

func (f *fakeStore) LastRefreshedAt(ctx context.Context) (time.Time, error) {
	return f.lastRefresh, f.lastErr
}

func (f *fakeStore) ReplaceCatalog(ctx context.Context, courses []models.Course, sections []models.Section, refreshedAt time.Time) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.replaceErr != nil {
		return 0, 0, f.replaceErr
	}

	f.replaceCalls++
	f.gotCourses = courses
	f.gotSections = sections
	f.gotRefreshedAt = refreshedAt

	// Mirror insert-if-absent counting.
	seen := make(map[string]struct{})
	var coursesInserted int64
	for _, course := range courses {
		if _, ok := seen[course.Code]; !ok {
			seen[course.Code] = struct{}{}
			coursesInserted++
		}
	}
	return coursesInserted, int64(len(sections)), nil
}

func testIngestConfig(workers int) *config.Config {
	cfg := &config.Config{}
	cfg.Ingest.MinRefreshInterval = "24h"
	cfg.Ingest.FetchWorkers = workers
	cfg.Ingest.DefaultSrcdb = "1264"
	cfg.Ingest.DefaultCareer = "UGRD"
	cfg.Ingest.DefaultCamps = []string{"WS@BRKLN,WS@INDUS", "WS@WS"}
	cfg.Ingest.SearchLimit = 200
	return cfg
}

func TestRefreshSkipsFreshCatalog(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStore{lastRefresh: time.Now().UTC().Add(-23 * time.Hour)}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	outcome, err := svc.Refresh(context.Background(), RefreshParams{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if outcome.Status != models.RefreshStatusSkipped {
		t.Fatalf("status = %q, want skipped", outcome.Status)
	}
	if len(fetcher.calls) != 0 {
		t.Fatal("a skipped refresh must not fetch anything")
	}
	if store.replaceCalls != 0 {
		t.Fatal("a skipped refresh must not touch the store")
	}
	if math.Abs(outcome.ElapsedHours-23) > 0.01 {
		t.Fatalf("elapsed hours = %f, want about 23", outcome.ElapsedHours)
	}
	if math.Abs(outcome.RemainingHours-1) > 0.01 {
		t.Fatalf("remaining hours = %f, want about 1", outcome.RemainingHours)
	}
}

func TestRefreshForceBypassesGate(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStore{lastRefresh: time.Now().UTC().Add(-time.Minute)}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	outcome, err := svc.Refresh(context.Background(), RefreshParams{Force: true})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if outcome.Status != models.RefreshStatusSuccess {
		t.Fatalf("status = %q, want success", outcome.Status)
	}
	if store.replaceCalls != 1 {
		t.Fatalf("replace calls = %d, want 1", store.replaceCalls)
	}
}

func TestRefreshUsesConfiguredDefaults(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStore{}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	if _, err := svc.Refresh(context.Background(), RefreshParams{}); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if fetcher.gotSrcdb != "1264" || fetcher.gotCareer != "UGRD" {
		t.Fatalf("defaults not applied: srcdb %q career %q", fetcher.gotSrcdb, fetcher.gotCareer)
	}
	if len(fetcher.calls) != 2 {
		t.Fatalf("expected the 2 default camps to be fetched, got %v", fetcher.calls)
	}
}

func TestRefreshFetchesEachPartitionOnceWithinWorkerBound(t *testing.T) {
	camps := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"}
	fetcher := &fakeFetcher{delay: 10 * time.Millisecond}
	store := &fakeStore{}
	svc := NewIngestService(fetcher, store, testIngestConfig(3))

	outcome, err := svc.Refresh(context.Background(), RefreshParams{Camps: camps, Force: true})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if outcome.Status != models.RefreshStatusSuccess {
		t.Fatalf("status = %q, want success", outcome.Status)
	}

	for _, camp := range camps {
		if fetcher.calls[camp] != 1 {
			t.Fatalf("camp %s fetched %d times, want exactly once", camp, fetcher.calls[camp])
		}
	}
	if max := atomic.LoadInt32(&fetcher.maxInFlight); max > 3 {
		t.Fatalf("%d fetches ran concurrently, the pool is bounded at 3", max)
	}
	if len(outcome.SnapshotPaths) != len(camps) {
		t.Fatalf("snapshot paths = %d, want %d", len(outcome.SnapshotPaths), len(camps))
	}
}

func TestRefreshAbortsWholeCycleOnPartitionFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		failCamps: map[string]error{
			"bad": apperrors.NewUpstreamError("bulletin returned status 503"),
		},
	}
	store := &fakeStore{}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	_, err := svc.Refresh(context.Background(), RefreshParams{
		Camps: []string{"good1", "bad", "good2"},
		Force: true,
	})
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	if store.replaceCalls != 0 {
		t.Fatal("a failed cycle must not touch the store")
	}
}

func TestRefreshNormalizesPartitionsInRequestOrder(t *testing.T) {
	brooklynCamp := "WS@BRKLN,WS@INDUS"
	wsqCamp := "WS@WS"

	fetcher := &fakeFetcher{
		// The first-requested partition finishes last; request order must
		// still win over completion order.
		delays: map[string]time.Duration{brooklynCamp: 30 * time.Millisecond},
		records: map[string][]bulletin.SectionRecord{
			brooklynCamp: {
				{Code: "MATH-UA 325", Title: "Analysis (Brooklyn listing)", No: "001"},
			},
			wsqCamp: {
				{Code: "MATH-UA 325", Title: "Analysis (WSQ listing)", No: "002"},
				{Code: "PHYS-UA 11", Title: "General Physics", No: "001"},
			},
		},
	}
	store := &fakeStore{}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	outcome, err := svc.Refresh(context.Background(), RefreshParams{
		Camps: []string{brooklynCamp, wsqCamp},
		Force: true,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if len(store.gotCourses) != 3 {
		t.Fatalf("expected 3 course tuples before store-level dedup, got %d", len(store.gotCourses))
	}
	if store.gotCourses[0].Title != "Analysis (Brooklyn listing)" {
		t.Fatalf("first-requested partition must come first, got %q", store.gotCourses[0].Title)
	}
	if outcome.CoursesInserted != 2 {
		t.Fatalf("courses inserted = %d, want 2 after dedup", outcome.CoursesInserted)
	}
	if outcome.SectionsInserted != 3 {
		t.Fatalf("sections inserted = %d, want 3", outcome.SectionsInserted)
	}

	if store.gotSections[0].CampusGroup != bulletin.CampusGroupBrooklyn {
		t.Fatalf("section 0 campus group = %q, want BROOKLYN", store.gotSections[0].CampusGroup)
	}
	if store.gotSections[1].CampusGroup != bulletin.CampusGroupWSQ {
		t.Fatalf("section 1 campus group = %q, want WSQ", store.gotSections[1].CampusGroup)
	}

	if !strings.Contains(outcome.SnapshotPaths[0], "BRKLN") {
		t.Fatalf("snapshot paths out of request order: %v", outcome.SnapshotPaths)
	}
}

func TestRefreshRejectsConcurrentCycles(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 4)
	fetcher := &fakeFetcher{
		block:   release,
		onStart: func() { started <- struct{}{} },
	}
	store := &fakeStore{}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Refresh(context.Background(), RefreshParams{Camps: []string{"only"}, Force: true})
		done <- err
	}()

	<-started

	if _, err := svc.Refresh(context.Background(), RefreshParams{Force: true}); !errors.Is(err, apperrors.ErrRefreshInProgress) {
		t.Fatalf("expected refresh-in-progress error, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
}

func TestRefreshSurfacesReplaceFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStore{replaceErr: apperrors.NewTransactionError("catalog replace failed: boom")}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	_, err := svc.Refresh(context.Background(), RefreshParams{Force: true})
	if !errors.Is(err, apperrors.ErrTransaction) {
		t.Fatalf("expected transaction error, got %v", err)
	}
}

func TestRefreshSurfacesGateReadFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := &fakeStore{lastErr: errors.New("connection refused")}
	svc := NewIngestService(fetcher, store, testIngestConfig(4))

	_, err := svc.Refresh(context.Background(), RefreshParams{})
	if !errors.Is(err, apperrors.ErrDatabaseOperation) {
		t.Fatalf("expected database operation error, got %v", err)
	}
	if len(fetcher.calls) != 0 {
		t.Fatal("a failed gate read must not trigger any fetches")
	}
}
