package types

import "time"

// AcademicYearMonths is the fixed billing timeline: June through the
// following April. All schedule computations are index positions within
// this sequence; a label outside it has no billing meaning.
var AcademicYearMonths = []string{
	"June 2025",
	"July 2025",
	"August 2025",
	"September 2025",
	"October 2025",
	"November 2025",
	"December 2025",
	"January 2026",
	"February 2026",
	"March 2026",
	"April 2026",
}

// calendarMonthLabels maps a calendar month number to its academic-year
// label. June-December fall in the first half of the window, January-April
// in the second. May has no label.
var calendarMonthLabels = map[time.Month]string{
	time.June:      "June 2025",
	time.July:      "July 2025",
	time.August:    "August 2025",
	time.September: "September 2025",
	time.October:   "October 2025",
	time.November:  "November 2025",
	time.December:  "December 2025",
	time.January:   "January 2026",
	time.February:  "February 2026",
	time.March:     "March 2026",
	time.April:     "April 2026",
}

// MonthIndex returns the position of a label within the academic year, or
// -1 when the label is not part of the window.
func MonthIndex(label string) int {
	for i, m := range AcademicYearMonths {
		if m == label {
			return i
		}
	}
	return -1
}

// MonthLabelForTime maps a timestamp to its academic-year label. Returns
// the empty string for months outside the window (May).
func MonthLabelForTime(t time.Time) string {
	return calendarMonthLabels[t.Month()]
}

// LastAcademicMonth returns the final label of the window, the default end
// month for students enrolled without an explicit one.
func LastAcademicMonth() string {
	return AcademicYearMonths[len(AcademicYearMonths)-1]
}
