package bulletin

import (
	"regexp"
	"strings"
)

var (
	meetPatternRe = regexp.MustCompile(`<div[^>]*class="meet"[^>]*>([^<]+)`)
	meetDatesRe   = regexp.MustCompile(`\((\d+/\d+)\s+to\s+(\d+/\d+)\)`)
)

// ParseMeetingHTML extracts the meeting pattern and the start/end date pair
// from the markup fragment of a details response, e.g.
//
//	<div class="meet">TR 9:30am-10:45am<span class="meet-dates"> (1/20 to 5/5)</span></div>
//
// yields ("TR 9:30am-10:45am", "1/20", "5/5"). The markup shape is
// upstream-controlled and may vary, so a missing sub-pattern yields empty
// strings, never an error.
func ParseMeetingHTML(meetingHTML string) (pattern, startDate, endDate string) {
	if meetingHTML == "" {
		return "", "", ""
	}

	if m := meetPatternRe.FindStringSubmatch(meetingHTML); m != nil {
		pattern = strings.TrimSpace(m[1])
	}

	if m := meetDatesRe.FindStringSubmatch(meetingHTML); m != nil {
		startDate = m[1]
		endDate = m[2]
	}

	return pattern, startDate, endDate
}
