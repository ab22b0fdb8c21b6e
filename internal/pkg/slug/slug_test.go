//go:build unit

package slug_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/slug"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Elf Bar 600", "elf-bar-600"},
		{"  Liquids & Pods!! ", "liquids-pods"},
		{"Crème Brûlée", "creme-brulee"},
		{"Жидкости", "zhidkosti"},
		{"Щука и Ёж", "schuka-i-ezh"},
		{"---", "item"},
		{"", "item"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.title))
		})
	}

	t.Run("long titles are cut without a trailing dash", func(t *testing.T) {
		key := slug.Make(strings.Repeat("duck ", 20))
		assert.LessOrEqual(t, len(key), slug.MaxLength)
		assert.False(t, strings.HasSuffix(key, "-"))
	})
}

func taken(keys ...string) slug.ExistsFunc {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(_ context.Context, key string) (bool, error) {
		return set[key], nil
	}
}

func TestEnsureUnique(t *testing.T) {
	ctx := context.Background()

	t.Run("free base is returned as is", func(t *testing.T) {
		key, err := slug.EnsureUnique(ctx, "duck", taken(), nil)
		require.NoError(t, err)
		assert.Equal(t, "duck", key)
	})

	t.Run("numeric suffixes are probed in order", func(t *testing.T) {
		key, err := slug.EnsureUnique(ctx, "duck", taken("duck"), nil)
		require.NoError(t, err)
		assert.Equal(t, "duck-2", key)

		key, err = slug.EnsureUnique(ctx, "duck", taken("duck", "duck-2"), nil)
		require.NoError(t, err)
		assert.Equal(t, "duck-3", key)
	})

	t.Run("falls back to a timestamp after the probe bound", func(t *testing.T) {
		now := time.UnixMilli(1700000000123)
		always := func(context.Context, string) (bool, error) { return true, nil }

		key, err := slug.EnsureUnique(ctx, "duck", always, func() time.Time { return now })
		require.NoError(t, err)
		assert.Equal(t, "duck-1700000000123", key)
	})

	t.Run("empty base uses the fallback key", func(t *testing.T) {
		key, err := slug.EnsureUnique(ctx, "", taken(), nil)
		require.NoError(t, err)
		assert.Equal(t, "item", key)
	})

	t.Run("store errors stop probing", func(t *testing.T) {
		boom := errs.New("db down")
		_, err := slug.EnsureUnique(ctx, "duck", func(context.Context, string) (bool, error) { return false, boom }, nil)
		assert.ErrorIs(t, err, boom)
	})
}
