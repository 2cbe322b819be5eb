package bulletin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coursescope/coursescope/internal/app/models"
)

// Campus groups that partition selectors map onto.
const (
	CampusGroupBrooklyn = "BROOKLYN"
	CampusGroupWSQ      = "WSQ"
)

// CampusGroupFor derives the campus group tag from a partition selector.
// Selectors naming the Brooklyn or Industry City campuses map to BROOKLYN,
// everything else is treated as Washington Square.
func CampusGroupFor(camp string) string {
	if strings.Contains(camp, "BRKLN") || strings.Contains(camp, "INDUS") {
		return CampusGroupBrooklyn
	}
	return CampusGroupWSQ
}

// SplitCourseCode splits a course code like "MATH-UA 325" into its subject
// and catalog number. Only codes made of exactly two space-separated parts
// have a derivable subject; anything else yields nil for both.
func SplitCourseCode(code string) (subject, catalogNumber *string) {
	parts := strings.Split(strings.TrimSpace(code), " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil
	}
	return &parts[0], &parts[1]
}

// CoerceTotal coerces an upstream enrollment total into an integer. The
// value is stringified, trimmed, and parsed; empty or non-numeric input
// yields nil rather than an error, since the feed is inconsistent about
// this field.
func CoerceTotal(value interface{}) *int32 {
	if value == nil {
		return nil
	}

	s := strings.TrimSpace(fmt.Sprint(value))
	if s == "" {
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil
	}

	total := int32(n)
	return &total
}

// Normalize converts one partition's records into course tuples and section
// rows. Records without a code or title are dropped. Courses are
// deduplicated by code with the first occurrence winning; both output
// sequences preserve the input record order.
func Normalize(records []SectionRecord, campusGroup string) ([]models.Course, []models.Section) {
	courses := make([]models.Course, 0, len(records))
	sections := make([]models.Section, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		code := record.Code.String()
		title := record.Title.String()
		if code == "" || title == "" {
			continue
		}

		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			subject, catalogNumber := SplitCourseCode(code)
			courses = append(courses, models.Course{
				Code:          code,
				Subject:       subject,
				CatalogNumber: catalogNumber,
				Title:         title,
			})
		}

		sections = append(sections, models.Section{
			CourseCode:   code,
			SectionKey:   record.Key.String(),
			Code:         code,
			Title:        title,
			Hide:         record.Hide.String(),
			CRN:          record.CRN.String(),
			SectionNo:    record.No.String(),
			Total:        CoerceTotal(record.Total.String()),
			Schd:         record.Schd.String(),
			Stat:         record.Stat.String(),
			IsCancelled:  record.IsCancelled.String(),
			Meets:        record.Meets.String(),
			MpKey:        record.MpKey.String(),
			MeetingTimes: record.MeetingTimes.String(),
			Instr:        record.Instr.String(),
			StartDate:    record.StartDate.String(),
			EndDate:      record.EndDate.String(),
			Srcdb:        record.Srcdb.String(),
			CampusGroup:  campusGroup,
		})
	}

	return courses, sections
}
