//go:build unit

package repository_test

import (
	"testing"

	"tg-storefront/internal/domain/catalog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func pgxErrNoRows() error {
	return pgx.ErrNoRows
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("elf-bar", "liquids", true, decimal.RequireFromString("9.90"), catalog.ProductCard{Title1: "Elf"})
	require.NoError(t, err)
	return p
}
