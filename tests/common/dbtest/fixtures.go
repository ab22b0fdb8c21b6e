//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, telegramID string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, telegram_id) VALUES ($1, $2) ON CONFLICT (telegram_id) DO NOTHING",
		userID, telegramID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE telegram_id = $1", telegramID).Scan(&userID)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, productKey, categoryKey string) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, product_key, category_key, title1, price) VALUES ($1, $2, $3, $4, 39.99)",
		productID, productKey, categoryKey, strings.ToUpper(productKey))
	require.NoError(t, err)
	return productID
}

func CreateTestFlavor(t *testing.T, db DBLike, productID uuid.UUID, flavorKey string) uuid.UUID {
	t.Helper()

	flavorID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO flavors (id, product_id, flavor_key, label, gradient) VALUES ($1, $2, $3, $3, ARRAY['#000000', '#ffffff'])",
		flavorID, productID, flavorKey)
	require.NoError(t, err)
	return flavorID
}

func CreateTestPickupPoint(t *testing.T, db DBLike, key string, adminTelegramIDs ...string) uuid.UUID {
	t.Helper()

	if adminTelegramIDs == nil {
		adminTelegramIDs = []string{}
	}
	pointID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO pickup_points (id, key, title, allowed_admin_telegram_ids) VALUES ($1, $2, $2, $3)",
		pointID, key, adminTelegramIDs)
	require.NoError(t, err)
	return pointID
}

func CountStockEntries(t *testing.T, db DBLike, flavorID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM stock_entries WHERE flavor_id = $1", flavorID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
