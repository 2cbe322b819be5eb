package bulletin

import "testing"

func TestParseMeetingHTML(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		pattern   string
		startDate string
		endDate   string
	}{
		{
			name:      "full fragment",
			html:      `<div class="meet">TR 9:30am-10:45am<span class="meet-dates"> (1/20 to 5/5)</span></div>`,
			pattern:   "TR 9:30am-10:45am",
			startDate: "1/20",
			endDate:   "5/5",
		},
		{
			name:    "no dates span",
			html:    `<div class="meet">MW 2:00pm-3:15pm</div>`,
			pattern: "MW 2:00pm-3:15pm",
		},
		{
			name:      "no meet block",
			html:      `<span class="meet-dates"> (1/20 to 5/5)</span>`,
			startDate: "1/20",
			endDate:   "5/5",
		},
		{
			name:      "extra div attributes",
			html:      `<div data-x="1" class="meet" id="m">F 11:00am-12:15pm<span> (9/2 to 12/12)</span></div>`,
			pattern:   "F 11:00am-12:15pm",
			startDate: "9/2",
			endDate:   "12/12",
		},
		{
			name: "empty input",
			html: "",
		},
		{
			name: "unrelated markup",
			html: `<div class="other">nothing here</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, start, end := ParseMeetingHTML(tt.html)
			if pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", pattern, tt.pattern)
			}
			if start != tt.startDate {
				t.Errorf("start date = %q, want %q", start, tt.startDate)
			}
			if end != tt.endDate {
				t.Errorf("end date = %q, want %q", end, tt.endDate)
			}
		})
	}
}
