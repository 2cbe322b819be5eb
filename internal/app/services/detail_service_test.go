package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
)

type fakeDetailFetcher struct {
	calls  int
	gotReq bulletin.DetailRequest
	result *bulletin.DetailResult
	raw    []byte
	err    error
}

func (f *fakeDetailFetcher) FetchDetails(ctx context.Context, req bulletin.DetailRequest) (*bulletin.DetailResult, []byte, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.result, f.raw, nil
}

type fakeDetailCache struct {
	entries map[string]*models.SectionDetail
	saves   int
}

func detailKey(group, key, srcdb string) string {
	return group + "|" + key + "|" + srcdb
}

func (f *fakeDetailCache) Find(ctx context.Context, group, key, srcdb string) (*models.SectionDetail, error) {
	detail, ok := f.entries[detailKey(group, key, srcdb)]
	if !ok {
		return nil, nil
	}
	copied := *detail
	return &copied, nil
}

func (f *fakeDetailCache) Save(ctx context.Context, detail *models.SectionDetail) error {
	if f.entries == nil {
		f.entries = make(map[string]*models.SectionDetail)
	}
	f.saves++
	copied := *detail
	f.entries[detailKey(detail.GroupKey, detail.CRNKey, detail.Srcdb)] = &copied
	return nil
}

func newTestDetailService(fetcher *fakeDetailFetcher, cache *fakeDetailCache) *DetailService {
	return NewDetailService(fetcher, cache, testIngestConfig(4))
}

func canonicalDetailResult() (*bulletin.DetailResult, []byte) {
	raw := []byte(`{"description":"An intro.","meeting_html":"<div class=\"meet\">TR 9:30am-10:45am<span class=\"meet-dates\"> (1/20 to 5/5)</span></div>","allInGroup":[{"crn":"8807"}]}`)
	return &bulletin.DetailResult{
		Description: "An intro.",
		MeetingHTML: `<div class="meet">TR 9:30am-10:45am<span class="meet-dates"> (1/20 to 5/5)</span></div>`,
		AllInGroup:  json.RawMessage(`[{"crn":"8807"}]`),
	}, raw
}

func TestGetOrFetchFetchesOnceThenServesCache(t *testing.T) {
	result, raw := canonicalDetailResult()
	fetcher := &fakeDetailFetcher{result: result, raw: raw}
	cache := &fakeDetailCache{}
	svc := newTestDetailService(fetcher, cache)

	req := bulletin.DetailRequest{Group: "code:MATH-UA 325", Key: "crn:8807", Srcdb: "1264", Matched: "crn:8807,8808"}

	first, err := svc.GetOrFetch(context.Background(), req)
	if err != nil {
		t.Fatalf("first GetOrFetch: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("first lookup made %d upstream calls, want 1", fetcher.calls)
	}
	if cache.saves != 1 {
		t.Fatalf("first lookup saved %d rows, want 1", cache.saves)
	}

	second, err := svc.GetOrFetch(context.Background(), req)
	if err != nil {
		t.Fatalf("second GetOrFetch: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("cache hit still made an upstream call (%d total)", fetcher.calls)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cache hit differs from first response:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatal("responses are not byte-identical")
	}
}

func TestGetOrFetchParsesMeetingMarkup(t *testing.T) {
	result, raw := canonicalDetailResult()
	fetcher := &fakeDetailFetcher{result: result, raw: raw}
	svc := newTestDetailService(fetcher, &fakeDetailCache{})

	detail, err := svc.GetOrFetch(context.Background(), bulletin.DetailRequest{Group: "g", Key: "k", Srcdb: "1264"})
	if err != nil {
		t.Fatalf("GetOrFetch: %v", err)
	}

	if detail.MeetingPattern != "TR 9:30am-10:45am" {
		t.Fatalf("meeting pattern = %q", detail.MeetingPattern)
	}
	if detail.StartDate != "1/20" || detail.EndDate != "5/5" {
		t.Fatalf("dates = %q .. %q", detail.StartDate, detail.EndDate)
	}
	if detail.MeetingHTML == "" {
		t.Fatal("raw meeting markup must be preserved")
	}
	if !bytes.Equal(detail.DetailsJSON, raw) {
		t.Fatal("details_json must hold the verbatim upstream payload")
	}
	if string(detail.AllSections) != `[{"crn":"8807"}]` {
		t.Fatalf("all_sections = %s", detail.AllSections)
	}
}

func TestGetOrFetchDefaultsSrcdb(t *testing.T) {
	result, raw := canonicalDetailResult()
	fetcher := &fakeDetailFetcher{result: result, raw: raw}
	cache := &fakeDetailCache{}
	svc := newTestDetailService(fetcher, cache)

	if _, err := svc.GetOrFetch(context.Background(), bulletin.DetailRequest{Group: "g", Key: "k"}); err != nil {
		t.Fatalf("GetOrFetch: %v", err)
	}

	if fetcher.gotReq.Srcdb != "1264" {
		t.Fatalf("srcdb sent upstream = %q, want default 1264", fetcher.gotReq.Srcdb)
	}
	if _, ok := cache.entries[detailKey("g", "k", "1264")]; !ok {
		t.Fatal("entry must be cached under the defaulted srcdb")
	}
}

func TestGetOrFetchUpstreamFailureWritesNothing(t *testing.T) {
	fetcher := &fakeDetailFetcher{err: apperrors.NewUpstreamError("bulletin returned status 502")}
	cache := &fakeDetailCache{}
	svc := newTestDetailService(fetcher, cache)

	req := bulletin.DetailRequest{Group: "g", Key: "k", Srcdb: "1264"}

	_, err := svc.GetOrFetch(context.Background(), req)
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if cache.saves != 0 {
		t.Fatal("a failed fetch must not write a partial cache entry")
	}

	// The next lookup is a fresh miss, not a poisoned hit.
	if _, err := svc.GetOrFetch(context.Background(), req); !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected upstream error again, got %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected a second upstream attempt, got %d calls", fetcher.calls)
	}
}

func TestGetOrFetchEmptyAllInGroupBecomesEmptyArray(t *testing.T) {
	raw := []byte(`{"description":"x"}`)
	fetcher := &fakeDetailFetcher{result: &bulletin.DetailResult{Description: "x"}, raw: raw}
	svc := newTestDetailService(fetcher, &fakeDetailCache{})

	detail, err := svc.GetOrFetch(context.Background(), bulletin.DetailRequest{Group: "g", Key: "k", Srcdb: "1264"})
	if err != nil {
		t.Fatalf("GetOrFetch: %v", err)
	}

	if string(detail.AllSections) != "[]" {
		t.Fatalf("all_sections = %q, want []", detail.AllSections)
	}
}
