package gedcom

import (
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

// SyntaxError is returned when a line cannot be read as GEDCOM.
func SyntaxError(line int, text string, reason string) error {
	msg := "Line <em>%d</em> is not valid GEDCOM: %s"
	vars := []any{line, reason}
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("gedcom line %d %q: %s",
			line, truncate(text, 60), reason),
	}
}

// EmptyError is returned when the input has no GEDCOM lines at all.
func EmptyError() error {
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  "File contains no GEDCOM records",
		Err:  fmt.Errorf("no gedcom lines found"),
	}
}

// ReadError wraps a failure of the underlying reader.
func ReadError(line int, err error) error {
	msg := "Cannot read GEDCOM data after line <em>%d</em>"
	vars := []any{line}
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("reading gedcom after line %d: %w", line, err),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
