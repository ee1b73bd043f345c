package iohttp

import (
	"fmt"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
)

// ServerStartError is returned when the HTTP server cannot listen.
func ServerStartError(port int, err error) error {
	msg := `Cannot start HTTP server on port <em>%d</em>

<em>How to fix:</em>
  1. Check that the port is free
  2. Use another port: <em>gedgraph serve --port 8081</em>`

	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: []any{port},
		Err:  fmt.Errorf("failed to listen on port %d: %w", port, err),
	}
}
