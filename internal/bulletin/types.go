package bulletin

import (
	"bytes"
	"encoding/json"
)

// Str is a string that tolerates the loose typing of the upstream feed,
// where a field may arrive as a JSON string, number, boolean, or null.
// Null and absent fields decode to the empty string; numbers and booleans
// keep their literal text.
type Str string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Str) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var decoded string
		if err := json.Unmarshal(data, &decoded); err != nil {
			return err
		}
		*s = Str(decoded)
		return nil
	}

	*s = Str(data)
	return nil
}

func (s Str) String() string {
	return string(s)
}

// SectionRecord is one record of an upstream search result. Every field is
// optional on the wire.
type SectionRecord struct {
	Key          Str `json:"key"`
	Code         Str `json:"code"`
	Title        Str `json:"title"`
	Hide         Str `json:"hide"`
	CRN          Str `json:"crn"`
	No           Str `json:"no"`
	Total        Str `json:"total"`
	Schd         Str `json:"schd"`
	Stat         Str `json:"stat"`
	IsCancelled  Str `json:"isCancelled"`
	Meets        Str `json:"meets"`
	MpKey        Str `json:"mpkey"`
	MeetingTimes Str `json:"meetingTimes"`
	Instr        Str `json:"instr"`
	StartDate    Str `json:"start_date"`
	EndDate      Str `json:"end_date"`
	Srcdb        Str `json:"srcdb"`
}

// SearchResult is the decoded body of one partition search response.
type SearchResult struct {
	Srcdb   Str             `json:"srcdb"`
	Count   Str             `json:"count"`
	Results []SectionRecord `json:"results"`
}

// PartitionResult bundles one partition's decoded records with the campus
// group its selector maps to and the snapshot file written for it.
type PartitionResult struct {
	Camp         string
	CampusGroup  string
	Records      []SectionRecord
	SnapshotPath string
}

// DetailRequest identifies one section for the enrichment call. Matched
// carries the comma-separated CRN context the upstream search returned
// alongside the section.
type DetailRequest struct {
	Group   string `json:"group"`
	Key     string `json:"key"`
	Srcdb   string `json:"srcdb"`
	Matched string `json:"matched"`
}

// DetailResult is the decoded body of one enrichment response. AllInGroup
// is kept raw: its shape varies and callers store it verbatim.
type DetailResult struct {
	Description              Str             `json:"description"`
	ClassNotes               Str             `json:"clssnotes"`
	Hours                    Str             `json:"hours_html"`
	Status                   Str             `json:"status"`
	Component                Str             `json:"component"`
	InstructionalMethod      Str             `json:"instructional_method"`
	CampusLocation           Str             `json:"campus_location"`
	RegistrationRestrictions Str             `json:"registration_restrictions"`
	MeetingHTML              Str             `json:"meeting_html"`
	DatesHTML                Str             `json:"dates_html"`
	AllInGroup               json.RawMessage `json:"allInGroup"`
}
