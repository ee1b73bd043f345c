package family

import (
	"errors"
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrSameContent is the cause of a duplicate source error.
var ErrSameContent = errors.New("file with the same content is already imported")

// duplicate carries the id of the source imported earlier.
type duplicate struct {
	sourceID string
}

func (d *duplicate) Error() string {
	return fmt.Sprintf("%s as source %s", ErrSameContent, d.sourceID)
}

func (d *duplicate) Unwrap() error {
	return ErrSameContent
}

// PersonNotFoundError is returned for unknown person ids.
func PersonNotFoundError(id string) error {
	return &gn.Error{
		Code: errcode.PersonNotFoundError,
		Msg:  "Person <em>%s</em> not found",
		Vars: []any{id},
		Err:  fmt.Errorf("person %s not found", id),
	}
}

// SourceNotFoundError is returned for unknown source ids.
func SourceNotFoundError(id string) error {
	return &gn.Error{
		Code: errcode.SourceNotFoundError,
		Msg:  "Source <em>%s</em> not found",
		Vars: []any{id},
		Err:  fmt.Errorf("source %s not found", id),
	}
}

// InvalidParameterError is returned when a request argument is out of
// range, before any store access.
func InvalidParameterError(param, reason string) error {
	return &gn.Error{
		Code: errcode.InvalidParameterError,
		Msg:  "Invalid parameter <em>%s</em>: %s",
		Vars: []any{param, reason},
		Err:  fmt.Errorf("invalid %s: %s", param, reason),
	}
}

// DuplicateSourceError is returned when a file with the same content was
// imported before.
func DuplicateSourceError(filename, existingID string) error {
	msg := `File <em>%s</em> is already imported

<em>Existing source:</em> %s

<em>How to fix:</em>
  Delete the source first: <em>gedgraph sources delete %s</em>`

	return &gn.Error{
		Code: errcode.ImportDuplicateSourceError,
		Msg:  msg,
		Vars: []any{filename, existingID, existingID},
		Err:  &duplicate{sourceID: existingID},
	}
}

// IsDuplicate reports whether err is a duplicate source error and returns
// the id of the existing source.
func IsDuplicate(err error) (string, bool) {
	gnErr, ok := asGnError(err)
	if !ok || gnErr.Code != errcode.ImportDuplicateSourceError {
		return "", false
	}
	var dup *duplicate
	if errors.As(gnErr.Err, &dup) {
		return dup.sourceID, true
	}
	return "", true
}

// IsNotFound reports whether err is about a missing person or source.
func IsNotFound(err error) bool {
	gnErr, ok := asGnError(err)
	if !ok {
		return false
	}
	return gnErr.Code == errcode.PersonNotFoundError ||
		gnErr.Code == errcode.SourceNotFoundError
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	gnErr, ok := asGnError(err)
	return ok && gnErr.Code == errcode.InvalidParameterError
}

// Code returns the error code of err, or UnknownError.
func Code(err error) gn.ErrorCode {
	if gnErr, ok := asGnError(err); ok {
		return gnErr.Code
	}
	return errcode.UnknownError
}

func asGnError(err error) (*gn.Error, bool) {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr, true
	}
	return nil, false
}
