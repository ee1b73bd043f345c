// Package gedgraph holds build information of the gedgraph binary.
package gedgraph

var (
	// Version of gedgraph, set by ldflags during release builds.
	Version = "v0.1.0"

	// Build timestamp, set by ldflags during release builds.
	Build = "n/a"
)
