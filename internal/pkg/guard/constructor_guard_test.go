package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("query not constructed")

		err := g.Validate(expected)

		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuard_EmbeddedInValue shows how a value type carries the guard.
func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type page struct {
		number int
		guard  guard.ConstructorGuard
	}
	errPageNotConstructed := errors.New("page must be created via newPage")
	newPage := func(number int) page {
		return page{number: number, guard: guard.NewConstructorGuard()}
	}

	require.NoError(t, newPage(2).guard.Validate(errPageNotConstructed))
	assert.Equal(t, errPageNotConstructed, page{number: 2}.guard.Validate(errPageNotConstructed))
}
