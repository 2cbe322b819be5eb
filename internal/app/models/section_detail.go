package models

import (
	"encoding/json"
	"time"
)

// SectionDetail is one cached enrichment record, keyed by the
// (group, key, srcdb) triple. A write for an existing triple fully
// replaces the previous entry.
type SectionDetail struct {
	GroupKey                 string          `json:"group" db:"group_key"`
	CRNKey                   string          `json:"key" db:"crn_key"`
	Srcdb                    string          `json:"srcdb" db:"srcdb"`
	Description              string          `json:"description" db:"description"`
	ClassNotes               string          `json:"classNotes" db:"class_notes"`
	Hours                    string          `json:"hours" db:"hours"`
	Status                   string          `json:"status" db:"status"`
	Component                string          `json:"component" db:"component"`
	InstructionalMethod      string          `json:"instructionalMethod" db:"instructional_method"`
	CampusLocation           string          `json:"campusLocation" db:"campus_location"`
	RegistrationRestrictions string          `json:"registrationRestrictions" db:"registration_restrictions"`
	MeetingHTML              string          `json:"meetingHtml" db:"meeting_html"`
	MeetingPattern           string          `json:"meetingPattern" db:"meeting_pattern"`
	StartDate                string          `json:"startDate" db:"start_date"`
	EndDate                  string          `json:"endDate" db:"end_date"`
	DatesHTML                string          `json:"datesHtml" db:"dates_html"`
	AllSections              json.RawMessage `json:"allSections,omitempty" db:"all_sections" swaggertype:"object"` // Nullable
	DetailsJSON              json.RawMessage `json:"raw" db:"details_json" swaggertype:"object"`
	CachedAt                 time.Time       `json:"cachedAt" db:"cached_at"`
}
