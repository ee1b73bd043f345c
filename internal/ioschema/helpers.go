package ioschema

import "fmt"

// formatIndexSQL formats the statement for a lower-case
// expression index.
func formatIndexSQL(table, column string) string {
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%s_%s_lower ON %s (lower(%s))",
		table, column, table, column,
	)
}
