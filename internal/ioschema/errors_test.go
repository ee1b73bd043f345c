package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestSchemaErrors_Structure verifies codes and wrapping.
func TestSchemaErrors_Structure(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"CreateSchemaError", CreateSchemaError(originalErr),
			errcode.SchemaCreateError, 0},
		{"MigrateSchemaError", MigrateSchemaError(originalErr),
			errcode.SchemaMigrateError, 0},
		{"IndexError", IndexError("persons", "surname", originalErr),
			errcode.SchemaIndexError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, tt.vars)
			assert.ErrorIs(t, gnErr.Err, originalErr)
		})
	}
}
