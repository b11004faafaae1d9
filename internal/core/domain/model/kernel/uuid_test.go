package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id1))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name  string
		input string
	}{
		{"canonical", canonical},
		{"braced", "{550e8400-e29b-41d4-a716-446655440000}"},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000"},
		{"no hyphens", "550e8400e29b41d4a716446655440000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromGoogle(t *testing.T) {
	raw := uuid.New()
	id, err := kernel.UUIDFromGoogle(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())

	_, err = kernel.UUIDFromGoogle(uuid.Nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.Panics(t, func() { kernel.MustUUIDFromGoogle(uuid.Nil) })
}

func TestUUIDZeroValue(t *testing.T) {
	var id kernel.UUID
	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}
