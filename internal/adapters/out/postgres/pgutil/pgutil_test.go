package pgutil_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/adapters/out/postgres/pgutil"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapWriteError(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_variant_sku"})

	err := pgutil.MapWriteError(dup, "sku", "LION-01")
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "idx_variant_sku", pgutil.ConstraintName(dup))

	other := errors.New("connection reset")
	require.Equal(t, other, pgutil.MapWriteError(other, "sku", "x"))
	require.NoError(t, pgutil.MapWriteError(nil, "sku", "x"))
	assert.False(t, pgutil.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestMapReadError(t *testing.T) {
	err := pgutil.MapReadError(gorm.ErrRecordNotFound, "product", "lion")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, "object not found: lion", err.Error())

	require.NoError(t, pgutil.MapReadError(nil, "product", "lion"))
}
