package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatIndexSQL verifies SQL formatting.
func TestFormatIndexSQL(t *testing.T) {
	tests := []struct {
		table, column, expected string
	}{
		{
			"persons", "surname",
			"CREATE INDEX IF NOT EXISTS idx_persons_surname_lower " +
				"ON persons (lower(surname))",
		},
		{
			"persons", "given_names",
			"CREATE INDEX IF NOT EXISTS idx_persons_given_names_lower " +
				"ON persons (lower(given_names))",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatIndexSQL(tt.table, tt.column))
	}
}
