package iooptimize

import (
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("optimizer: operator has no database handle"),
	}
}

// StepError is returned when one of the optimization steps fails.
func StepError(step string, err error) error {
	msg := `Optimization step <em>%s</em> failed

<em>How to fix:</em>
  1. Make sure no import is running
  2. Run <em>gedgraph migrate</em> and try again`

	return &gn.Error{
		Code: errcode.OptimizeError,
		Msg:  msg,
		Vars: []any{step},
		Err:  fmt.Errorf("optimize %s: %w", step, err),
	}
}
