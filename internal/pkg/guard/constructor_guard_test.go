package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("cart must be created via NewCart")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuardEmbedded(t *testing.T) {
	type sku struct {
		value string
		guard guard.ConstructorGuard
	}
	errSKUNotConstructed := errors.New("sku must be created via newSKU")
	newSKU := func(v string) (sku, error) {
		if v == "" {
			return sku{}, errors.New("sku is required")
		}
		return sku{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_path_is_valid", func(t *testing.T) {
		s, err := newSKU("LION-01")
		require.NoError(t, err)
		require.NoError(t, s.guard.Validate(errSKUNotConstructed))
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		s := sku{value: "LION-01"}
		assert.Equal(t, errSKUNotConstructed, s.guard.Validate(errSKUNotConstructed))
	})

	t.Run("copies_keep_state", func(t *testing.T) {
		s, err := newSKU("LION-01")
		require.NoError(t, err)
		c := s
		require.NoError(t, c.guard.Validate(errSKUNotConstructed))
	})
}

func BenchmarkConstructorGuard(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
