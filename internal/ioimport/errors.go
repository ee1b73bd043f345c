package ioimport

import (
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when an import is attempted without a
// database connection.
func NotConnectedError() error {
	msg := "Import attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// FileTooLargeError is returned when an upload exceeds the size limit.
func FileTooLargeError(filename string, size int64, limit int) error {
	msg := `File <em>%s</em> is too large

<em>Size:</em> %d bytes
<em>Limit:</em> %d bytes

<em>How to fix:</em>
  Raise the limit in config.yaml (import.max_file_size) or with
  GEDGRAPH_IMPORT_MAX_FILE_SIZE`

	return &gn.Error{
		Code: errcode.ImportFileTooLargeError,
		Msg:  msg,
		Vars: []any{filename, size, limit},
		Err: fmt.Errorf("file %s has %d bytes, limit is %d",
			filename, size, limit),
	}
}

// MalformedFileError is returned when the file cannot be read as GEDCOM.
// The source stays in error status.
func MalformedFileError(filename string, err error) error {
	msg := `File <em>%s</em> is not a valid GEDCOM file

<em>Reason:</em> %s`

	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  msg,
		Vars: []any{filename, err},
		Err:  fmt.Errorf("cannot parse %s: %w", filename, err),
	}
}

// SourceStateError is returned when the status of a source cannot be
// recorded.
func SourceStateError(sourceID, status string, err error) error {
	msg := "Cannot set status of source <em>%s</em> to <em>%s</em>"

	return &gn.Error{
		Code: errcode.ImportSourceStateError,
		Msg:  msg,
		Vars: []any{sourceID, status},
		Err: fmt.Errorf("failed to set source %s to %s: %w",
			sourceID, status, err),
	}
}

// CancelledError is returned when the import context is cancelled.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  "Import was cancelled",
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
