package errs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jauntkid/TailorPro/errs"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name string
		err  *errs.Error
		kind errs.Kind
	}{
		{"not found", errs.NotFound("order %d not found", 7), errs.KindNotFound},
		{"validation", errs.Validation("amount must be positive"), errs.KindValidation},
		{"conflict", errs.Conflict("phone already in use"), errs.KindConflict},
		{"invalid reference", errs.InvalidReference("measurement belongs to another customer"), errs.KindInvalidReference},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestNotFoundFormatsMessage(t *testing.T) {
	err := errs.NotFound("customer %d not found", 42)

	assert.Equal(t, "customer 42 not found", err.Error())
}

func TestKindOf(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		kind, ok := errs.KindOf(errs.Conflict("duplicate"))

		require.True(t, ok)
		assert.Equal(t, errs.KindConflict, kind)
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("saving order: %w", errs.NotFound("product 3 not found"))

		kind, ok := errs.KindOf(wrapped)

		require.True(t, ok)
		assert.Equal(t, errs.KindNotFound, kind)
	})

	t.Run("foreign error", func(t *testing.T) {
		_, ok := errs.KindOf(fmt.Errorf("plain failure"))

		assert.False(t, ok)
	})

	t.Run("nil error", func(t *testing.T) {
		_, ok := errs.KindOf(nil)

		assert.False(t, ok)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", errs.KindNotFound.String())
	assert.Equal(t, "validation", errs.KindValidation.String())
	assert.Equal(t, "conflict", errs.KindConflict.String())
	assert.Equal(t, "invalid_reference", errs.KindInvalidReference.String())
	assert.Equal(t, "unknown", errs.Kind(99).String())
}
