// Package gendate converts loosely formatted genealogical date strings
// into calendar dates.
//
// GEDCOM files carry dates such as "ABT 1875", "BET 1850 AND 1855",
// "12 JAN 1901", "@#DJULIAN@ 3 MAR 1700" or free-form user input like
// "03/12/1890". Parse never fails: anything it cannot understand becomes
// an unknown Date that still keeps the original text for display.
package gendate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Qualifier describes how exact a date is.
type Qualifier string

const (
	Exact       Qualifier = ""
	About       Qualifier = "about"
	Estimated   Qualifier = "estimated"
	Calculated  Qualifier = "calculated"
	Before      Qualifier = "before"
	After       Qualifier = "after"
	Between     Qualifier = "between"
	From        Qualifier = "from"
	To          Qualifier = "to"
	Interpreted Qualifier = "interpreted"
)

// Precision tells which parts of a date were present in the text.
type Precision int

const (
	Unknown Precision = iota
	YearOnly
	MonthYear
	FullDate
)

// Date is the result of parsing. Missing month and day default to 1.
type Date struct {
	// Text is the original input, verbatim.
	Text string `json:"text"`

	Qualifier Qualifier `json:"qualifier,omitempty"`
	Precision Precision `json:"precision"`

	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Known returns true when a calendar date was extracted.
func (d Date) Known() bool {
	return d.Precision != Unknown
}

// Time returns the date as UTC midnight, or nil for an unknown date.
func (d Date) Time() *time.Time {
	if !d.Known() {
		return nil
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return &t
}

var qualifiers = map[string]Qualifier{
	"ABT":        About,
	"ABOUT":      About,
	"CIRCA":      About,
	"CA":         About,
	"C":          About,
	"APPROX":     About,
	"EST":        Estimated,
	"ESTIMATED":  Estimated,
	"CAL":        Calculated,
	"CALCULATED": Calculated,
	"BEF":        Before,
	"BEFORE":     Before,
	"AFT":        After,
	"AFTER":      After,
	"BET":        Between,
	"BETWEEN":    Between,
	"FROM":       From,
	"TO":         To,
	"INT":        Interpreted,
}

var months = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

type layout struct {
	format    string
	precision Precision
	shortYear bool
}

// layouts are tried in order, most specific first. Day-first numeric
// forms come before month-first ones.
var layouts = []layout{
	{"2 Jan 2006", FullDate, false},
	{"2 January 2006", FullDate, false},
	{"Jan 2 2006", FullDate, false},
	{"January 2 2006", FullDate, false},
	{"2006-01-02", FullDate, false},
	{"2006/01/02", FullDate, false},
	{"2/1/2006", FullDate, false},
	{"2.1.2006", FullDate, false},
	{"2-1-2006", FullDate, false},
	{"1/2/2006", FullDate, false},
	{"1-2-2006", FullDate, false},
	{"2/1/06", FullDate, true},
	{"2.1.06", FullDate, true},
	{"2-1-06", FullDate, true},
	{"Jan 2006", MonthYear, false},
	{"January 2006", MonthYear, false},
	{"1/2006", MonthYear, false},
	{"1-2006", MonthYear, false},
	{"2006-01", MonthYear, false},
	{"2006", YearOnly, false},
}

var (
	calendarRe  = regexp.MustCompile(`@#D[A-Z ]+@`)
	parensRe    = regexp.MustCompile(`\(.*?\)`)
	dualYearRe  = regexp.MustCompile(`\b(\d{4})/\d{1,2}$`)
	yearRangeRe = regexp.MustCompile(`^(\d{4})\s*-\s*\d{4}$`)
	spacesRe    = regexp.MustCompile(`\s+`)
	dayMonthRe  = regexp.MustCompile(`\b(\d{1,2})\s+([A-Z]{3,9})\b\.?\s*(\d{4})\b`)
	monthDayRe  = regexp.MustCompile(`\b([A-Z]{3,9})\b\.?\s*(\d{1,2})\s+(\d{4})\b`)
	monthYearRe = regexp.MustCompile(`\b([A-Z]{3,9})\b\.?\s*(\d{4})\b`)
	yearRe      = regexp.MustCompile(`\b(\d{4})\b`)
)

// Parse converts text into a Date. Qualifiers are recorded but never
// change the calendar date extracted from the remaining text. For ranges
// the first bound is used.
func Parse(text string) Date {
	res := Date{Text: text}
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return res
	}

	s = calendarRe.ReplaceAllString(s, " ")
	s = parensRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",", " ")
	s = spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")

	s, res.Qualifier = stripQualifiers(s)
	s = firstBound(s)
	s = dualYearRe.ReplaceAllString(s, "$1")
	s = strings.TrimSuffix(s, ".")

	if y, m, d, p, ok := byLayout(s); ok {
		res.Year, res.Month, res.Day, res.Precision = y, m, d, p
		return res
	}
	if y, m, d, p, ok := byRegex(s); ok {
		res.Year, res.Month, res.Day, res.Precision = y, m, d, p
	}
	return res
}

func stripQualifiers(s string) (string, Qualifier) {
	var q Qualifier
	for {
		word, rest, _ := strings.Cut(s, " ")
		qual, ok := qualifiers[strings.TrimSuffix(word, ".")]
		if !ok || rest == "" {
			return s, q
		}
		// the first qualifier is the meaningful one: "BET ... AND ..."
		if q == Exact {
			q = qual
		}
		s = rest
	}
}

func firstBound(s string) string {
	for _, sep := range []string{" AND ", " TO ", " - "} {
		if before, _, ok := strings.Cut(s, sep); ok {
			s = before
		}
	}
	if m := yearRangeRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return strings.TrimSpace(s)
}

func byLayout(s string) (int, int, int, Precision, bool) {
	for _, l := range layouts {
		t, err := time.Parse(l.format, s)
		if err != nil {
			continue
		}
		year := t.Year()
		if l.shortYear {
			year = expandYear(year % 100)
		}
		return year, int(t.Month()), t.Day(), l.precision, true
	}
	return 0, 0, 0, Unknown, false
}

// expandYear maps a two-digit year onto 1930-2029.
func expandYear(yy int) int {
	if yy < 30 {
		return 2000 + yy
	}
	return 1900 + yy
}

func byRegex(s string) (int, int, int, Precision, bool) {
	for _, m := range dayMonthRe.FindAllStringSubmatch(s, -1) {
		month, ok := monthNumber(m[2])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if validDay(year, month, day) {
			return year, month, day, FullDate, true
		}
	}

	// "SEPT 12 1880" and other spellings time.Parse does not know
	for _, m := range monthDayRe.FindAllStringSubmatch(s, -1) {
		month, ok := monthNumber(m[1])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validDay(year, month, day) {
			return year, month, day, FullDate, true
		}
	}

	for _, m := range monthYearRe.FindAllStringSubmatch(s, -1) {
		month, ok := monthNumber(m[1])
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(m[2])
		return year, month, 1, MonthYear, true
	}

	if m := yearRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year, 1, 1, YearOnly, true
	}
	return 0, 0, 0, Unknown, false
}

func monthNumber(name string) (int, bool) {
	if len(name) < 3 {
		return 0, false
	}
	m, ok := months[name[:3]]
	return m, ok
}

func validDay(year, month, day int) bool {
	if day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day
}
