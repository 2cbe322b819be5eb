package models

// Section represents one class section of a course, carrying the upstream
// fields through mostly untouched. Sections reference their course by code;
// the link is not enforced with a foreign key because the upstream feed
// occasionally ships sections whose course record is missing.
type Section struct {
	ID           int64  `json:"id" db:"id"`
	CourseCode   string `json:"courseCode" db:"course_code"`
	SectionKey   string `json:"key" db:"section_key"`
	Code         string `json:"code" db:"code"`
	Title        string `json:"title" db:"title"`
	Hide         string `json:"hide" db:"hide"`
	CRN          string `json:"crn" db:"crn"`
	SectionNo    string `json:"no" db:"section_no"`
	Total        *int32 `json:"total,omitempty" db:"total"` // Nullable
	Schd         string `json:"schd" db:"schd"`
	Stat         string `json:"stat" db:"stat"`
	IsCancelled  string `json:"isCancelled" db:"is_cancelled"`
	Meets        string `json:"meets" db:"meets"`
	MpKey        string `json:"mpkey" db:"mpkey"`
	MeetingTimes string `json:"meetingTimes" db:"meeting_times"`
	Instr        string `json:"instr" db:"instr"`
	StartDate    string `json:"startDate" db:"start_date"`
	EndDate      string `json:"endDate" db:"end_date"`
	Srcdb        string `json:"srcdb" db:"srcdb"`
	CampusGroup  string `json:"campusGroup" db:"campus_group"`
}

// SectionSearchFilter carries section search criteria. Empty fields are
// not applied.
type SectionSearchFilter struct {
	Code        string
	Title       string
	CRN         string
	Schd        string
	CampusGroup string
}

// SectionSearchRow is a section joined with its course for search results.
// Course columns are nullable because the join is a LEFT JOIN.
type SectionSearchRow struct {
	ID            int64   `json:"id" db:"id"`
	CourseCode    string  `json:"courseCode" db:"course_code"`
	SectionKey    string  `json:"key" db:"section_key"`
	Code          string  `json:"code" db:"code"`
	Title         string  `json:"title" db:"title"`
	Hide          string  `json:"hide" db:"hide"`
	CRN           string  `json:"crn" db:"crn"`
	SectionNo     string  `json:"no" db:"section_no"`
	Total         *int32  `json:"total,omitempty" db:"total"`
	Schd          string  `json:"schd" db:"schd"`
	Stat          string  `json:"stat" db:"stat"`
	IsCancelled   string  `json:"isCancelled" db:"is_cancelled"`
	Meets         string  `json:"meets" db:"meets"`
	MpKey         string  `json:"mpkey" db:"mpkey"`
	MeetingTimes  string  `json:"meetingTimes" db:"meeting_times"`
	Instr         string  `json:"instr" db:"instr"`
	StartDate     string  `json:"startDate" db:"start_date"`
	EndDate       string  `json:"endDate" db:"end_date"`
	Srcdb         string  `json:"srcdb" db:"srcdb"`
	CampusGroup   string  `json:"campusGroup" db:"campus_group"`
	Subject       *string `json:"subject,omitempty" db:"subject"`
	CatalogNumber *string `json:"catalogNumber,omitempty" db:"catalog_number"`
	CourseTitle   *string `json:"courseTitle,omitempty" db:"course_title"`
}
