package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	e, err := kernel.NewEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", e.String())

	_, err = kernel.NewEmail("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	for _, bad := range []string{"jane", "Jane <jane@example.com>", "jane@"} {
		_, err = kernel.NewEmail(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestCountry(t *testing.T) {
	c, err := kernel.NewCountry("de")
	require.NoError(t, err)
	assert.Equal(t, "DE", c.Code())
	assert.Equal(t, "Germany", c.Name())

	_, err = kernel.NewCountry("US")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.NewCountry(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	countries := kernel.SupportedCountries()
	assert.Len(t, countries, 27)
	assert.Equal(t, "AT", countries[0].Code)
	countries[0].Code = "XX"
	assert.Equal(t, "AT", kernel.SupportedCountries()[0].Code)
}
