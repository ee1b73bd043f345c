package gendate_test

import (
	"testing"
	"time"

	"github.com/gnames/gedgraph/pkg/gendate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		msg       string
		text      string
		year      int
		month     int
		day       int
		precision gendate.Precision
		qualifier gendate.Qualifier
	}{
		{"full gedcom", "12 JAN 1901", 1901, 1, 12, gendate.FullDate, gendate.Exact},
		{"lower case", "3 mar 1850", 1850, 3, 3, gendate.FullDate, gendate.Exact},
		{"long month", "1 January 1901", 1901, 1, 1, gendate.FullDate, gendate.Exact},
		{"month first", "January 2, 1901", 1901, 1, 2, gendate.FullDate, gendate.Exact},
		{"abbreviated month first", "Sept 12, 1880", 1880, 9, 12, gendate.FullDate, gendate.Exact},
		{"dotted month first", "Sept. 3 1880", 1880, 9, 3, gendate.FullDate, gendate.Exact},
		{"month first bad day", "Sept 31, 1880", 1880, 1, 1, gendate.YearOnly, gendate.Exact},
		{"iso", "1890-12-03", 1890, 12, 3, gendate.FullDate, gendate.Exact},
		{"day first slash", "03/12/1890", 1890, 12, 3, gendate.FullDate, gendate.Exact},
		{"month first slash", "12/25/1890", 1890, 12, 25, gendate.FullDate, gendate.Exact},
		{"dots", "3.12.1890", 1890, 12, 3, gendate.FullDate, gendate.Exact},
		{"short year", "3/12/45", 1945, 12, 3, gendate.FullDate, gendate.Exact},
		{"short year recent", "3/12/05", 2005, 12, 3, gendate.FullDate, gendate.Exact},
		{"month year", "MAY 1901", 1901, 5, 1, gendate.MonthYear, gendate.Exact},
		{"year", "1875", 1875, 1, 1, gendate.YearOnly, gendate.Exact},
		{"about", "ABT 1875", 1875, 1, 1, gendate.YearOnly, gendate.About},
		{"about dot", "Abt. 1875", 1875, 1, 1, gendate.YearOnly, gendate.About},
		{"circa", "circa 1875", 1875, 1, 1, gendate.YearOnly, gendate.About},
		{"estimated", "EST 1 JUN 1800", 1800, 6, 1, gendate.FullDate, gendate.Estimated},
		{"calculated", "CAL 1790", 1790, 1, 1, gendate.YearOnly, gendate.Calculated},
		{"before", "BEF 1900", 1900, 1, 1, gendate.YearOnly, gendate.Before},
		{"after", "AFT 12 DEC 1899", 1899, 12, 12, gendate.FullDate, gendate.After},
		{"between", "BET 1850 AND 1855", 1850, 1, 1, gendate.YearOnly, gendate.Between},
		{"from to", "FROM 1850 TO 1860", 1850, 1, 1, gendate.YearOnly, gendate.From},
		{"to only", "TO 1860", 1860, 1, 1, gendate.YearOnly, gendate.To},
		{"dash range", "1850 - 1855", 1850, 1, 1, gendate.YearOnly, gendate.Exact},
		{"compact range", "1850-1855", 1850, 1, 1, gendate.YearOnly, gendate.Exact},
		{"calendar escape", "@#DJULIAN@ 3 MAR 1700", 1700, 3, 3, gendate.FullDate, gendate.Exact},
		{"dual year", "11 FEB 1731/32", 1731, 2, 11, gendate.FullDate, gendate.Exact},
		{"interpreted", "INT 1900 (around the turn of century)", 1900, 1, 1, gendate.YearOnly, gendate.Interpreted},
		{"bad day falls back to month", "31 FEB 1900", 1900, 2, 1, gendate.MonthYear, gendate.Exact},
		{"season falls back to year", "Spring 1880", 1880, 1, 1, gendate.YearOnly, gendate.Exact},
		{"year inside text", "sometime in 1788 probably", 1788, 1, 1, gendate.YearOnly, gendate.Exact},
	}

	for _, v := range tests {
		res := gendate.Parse(v.text)
		assert.True(t, res.Known(), v.msg)
		assert.Equal(t, v.year, res.Year, v.msg)
		assert.Equal(t, v.month, res.Month, v.msg)
		assert.Equal(t, v.day, res.Day, v.msg)
		assert.Equal(t, v.precision, res.Precision, v.msg)
		assert.Equal(t, v.qualifier, res.Qualifier, v.msg)
		assert.Equal(t, v.text, res.Text, v.msg)
	}
}

func TestParseUnknown(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"unknown",
		"ABT",
		"12 MAY",
		"about the time of the war",
		"@#DHEBREW@",
	}

	for _, v := range tests {
		var res gendate.Date
		assert.NotPanics(t, func() { res = gendate.Parse(v) }, v)
		assert.False(t, res.Known(), v)
		assert.Nil(t, res.Time(), v)
		assert.Equal(t, v, res.Text, v)
	}
}

func TestQualifierKeepsDate(t *testing.T) {
	bare := gendate.Parse("14 JUL 1889")
	for _, q := range []string{"ABT", "EST", "CAL", "BEF", "AFT", "BET", "FROM"} {
		res := gendate.Parse(q + " 14 JUL 1889")
		assert.Equal(t, bare.Year, res.Year, q)
		assert.Equal(t, bare.Month, res.Month, q)
		assert.Equal(t, bare.Day, res.Day, q)
	}
}

func TestTime(t *testing.T) {
	res := gendate.Parse("5 NOV 1605")
	tm := res.Time()
	require.NotNil(t, tm)
	assert.Equal(t, time.Date(1605, time.November, 5, 0, 0, 0, 0, time.UTC), *tm)
}
