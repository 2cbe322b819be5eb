package models

import "time"

// RefreshStatus is the outcome class of a refresh cycle. A failed cycle is
// reported through the error return instead of an outcome value.
type RefreshStatus string

const (
	RefreshStatusSuccess RefreshStatus = "success"
	RefreshStatusSkipped RefreshStatus = "skipped"
)

// RefreshOutcome describes what a refresh cycle did.
type RefreshOutcome struct {
	CycleID          string        `json:"cycleId"`
	Status           RefreshStatus `json:"status"`
	Srcdb            string        `json:"srcdb"`
	CoursesInserted  int64         `json:"coursesInserted"`
	SectionsInserted int64         `json:"sectionsInserted"`
	SnapshotPaths    []string      `json:"snapshotPaths,omitempty"`
	// ElapsedHours and RemainingHours are populated on a skipped outcome:
	// how long ago the catalog was refreshed and how long until the
	// staleness gate opens again.
	ElapsedHours   float64 `json:"elapsedHours,omitempty"`
	RemainingHours float64 `json:"remainingHours,omitempty"`
}

// CatalogStatus summarizes the current catalog snapshot.
type CatalogStatus struct {
	CourseCount  int64              `json:"courseCount"`
	SectionCount int64              `json:"sectionCount"`
	CampusGroups []CampusGroupCount `json:"campusGroups"`
	LastUpdate   *time.Time         `json:"lastUpdate,omitempty"` // Nullable
}

// CampusGroupCount is a per-campus-group section tally.
type CampusGroupCount struct {
	CampusGroup  string `json:"campusGroup" db:"campus_group"`
	SectionCount int64  `json:"sectionCount" db:"section_count"`
}
