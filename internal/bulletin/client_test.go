package bulletin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/snapshots"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Bulletin.BaseURL = baseURL
	cfg.Bulletin.RequestTimeout = "5s"
	cfg.Bulletin.Origin = "https://bulletins.example.edu"
	cfg.Bulletin.Referer = "https://bulletins.example.edu/class-search/"
	cfg.Bulletin.UserAgent = "test-agent"
	return cfg
}

func testClient(t *testing.T, baseURL string) (*Client, string) {
	t.Helper()
	dir := t.TempDir()
	writer, err := snapshots.NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	return NewClient(testConfig(baseURL), writer), dir
}

func TestSearchPartitionSuccess(t *testing.T) {
	const responseBody = `{"srcdb":"1264","count":1,"results":[{"key":"1","code":"MATH-UA 325","title":"Analysis","crn":"8807","total":30,"srcdb":"1264"}]}`

	var gotBody searchBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		q := r.URL.Query()
		if q.Get("page") != "fose" || q.Get("route") != "search" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("career") != "UGRD" || q.Get("camp") != "WS@BRKLN,WS@INDUS" {
			t.Errorf("career/camp not propagated: %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
			t.Error("missing X-Requested-With header")
		}
		if r.Header.Get("Origin") != "https://bulletins.example.edu" {
			t.Errorf("unexpected Origin: %s", r.Header.Get("Origin"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, responseBody)
	}))
	defer server.Close()

	client, dir := testClient(t, server.URL)

	result, err := client.SearchPartition(context.Background(), "1264", "UGRD", "WS@BRKLN,WS@INDUS")
	if err != nil {
		t.Fatalf("SearchPartition: %v", err)
	}

	if gotBody.Other.Srcdb != "1264" {
		t.Fatalf("request body srcdb = %q, want 1264", gotBody.Other.Srcdb)
	}
	if len(gotBody.Criteria) != 2 ||
		gotBody.Criteria[0] != (searchCriterion{Field: "career", Value: "UGRD"}) ||
		gotBody.Criteria[1] != (searchCriterion{Field: "camp", Value: "WS@BRKLN,WS@INDUS"}) {
		t.Fatalf("unexpected criteria: %+v", gotBody.Criteria)
	}

	if result.CampusGroup != CampusGroupBrooklyn {
		t.Fatalf("campus group = %q, want %q", result.CampusGroup, CampusGroupBrooklyn)
	}
	if len(result.Records) != 1 || result.Records[0].Code != "MATH-UA 325" {
		t.Fatalf("unexpected records: %+v", result.Records)
	}

	wantPath := filepath.Join(dir, snapshots.FileName("1264", "UGRD", "WS@BRKLN,WS@INDUS"))
	if result.SnapshotPath != wantPath {
		t.Fatalf("snapshot path = %q, want %q", result.SnapshotPath, wantPath)
	}
	stored, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(stored) != responseBody {
		t.Fatalf("snapshot is not the verbatim response body:\n%s", stored)
	}
}

func TestSearchPartitionUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, dir := testClient(t, server.URL)

	_, err := client.SearchPartition(context.Background(), "1264", "UGRD", "WS@WS")
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, snapshots.FileName("1264", "UGRD", "WS@WS"))); !os.IsNotExist(err) {
		t.Fatal("no snapshot should be written for a failed fetch")
	}
}

func TestSearchPartitionSnapshotSurvivesParseFailure(t *testing.T) {
	const mangled = `{"results": [{"code": "MATH-`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, mangled)
	}))
	defer server.Close()

	client, dir := testClient(t, server.URL)

	_, err := client.SearchPartition(context.Background(), "1264", "UGRD", "WS@WS")
	if !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	stored, err := os.ReadFile(filepath.Join(dir, snapshots.FileName("1264", "UGRD", "WS@WS")))
	if err != nil {
		t.Fatalf("snapshot should be written before parsing: %v", err)
	}
	if string(stored) != mangled {
		t.Fatalf("snapshot mangled further: %s", stored)
	}
}

func TestFetchDetails(t *testing.T) {
	const responseBody = `{"description":"An intro.","clssnotes":"","hours_html":"4","status":"A","component":"LEC","instructional_method":"In-Person","campus_location":"WSQ","registration_restrictions":"","meeting_html":"<div class=\"meet\">TR 9:30am-10:45am<span class=\"meet-dates\"> (1/20 to 5/5)</span></div>","dates_html":"1/20-5/5","allInGroup":[{"crn":"8807"}]}`

	var gotReq DetailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "fose" || q.Get("route") != "details" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		io.WriteString(w, responseBody)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)

	req := DetailRequest{
		Group:   "code:MATH-UA 325",
		Key:     "crn:8807",
		Srcdb:   "1264",
		Matched: "crn:8807,8808",
	}
	result, raw, err := client.FetchDetails(context.Background(), req)
	if err != nil {
		t.Fatalf("FetchDetails: %v", err)
	}

	if gotReq != req {
		t.Fatalf("request body = %+v, want %+v", gotReq, req)
	}
	if result.Description != "An intro." || result.Component != "LEC" {
		t.Fatalf("unexpected fields: %+v", result)
	}
	if string(result.AllInGroup) != `[{"crn":"8807"}]` {
		t.Fatalf("allInGroup not kept raw: %s", result.AllInGroup)
	}
	if string(raw) != responseBody {
		t.Fatal("raw response bytes were not returned verbatim")
	}
}
