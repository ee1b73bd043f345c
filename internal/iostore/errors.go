package iostore

import (
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

// QueryError is returned when reading from the store fails.
func QueryError(what string, err error) error {
	msg := `Cannot read <em>%s</em> from the database

<em>How to fix:</em>
  1. Check that the schema exists: <em>gedgraph migrate</em>
  2. Review the log file for details`

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: []any{what},
		Err:  fmt.Errorf("failed to query %s: %w", what, err),
	}
}

// WriteError is returned when a change to the store fails.
func WriteError(what string, err error) error {
	msg := "Cannot update <em>%s</em> in the database"

	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: []any{what},
		Err:  fmt.Errorf("failed to write %s: %w", what, err),
	}
}
