//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func notFound() error {
	return infra.WrapRepoErr(discard, infra.KindNotFound, "not found", nil)
}

type userStore struct{ mock.Mock }

func (m *userStore) FindByTelegramID(ctx context.Context, telegramID string) (*queries.UserView, error) {
	args := m.Called(ctx, telegramID)
	v, _ := args.Get(0).(*queries.UserView)
	return v, args.Error(1)
}

func (m *userStore) ListFirstPage(ctx context.Context, limit int) ([]*queries.UserListItem, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]*queries.UserListItem)
	return v, args.Error(1)
}

func (m *userStore) ListKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int) ([]*queries.UserListItem, error) {
	args := m.Called(ctx, lastCreatedAt, lastID, limit)
	v, _ := args.Get(0).([]*queries.UserListItem)
	return v, args.Error(1)
}

type cartStore struct{ mock.Mock }

func (m *cartStore) FindByTelegramID(ctx context.Context, telegramID string) (*queries.CartView, error) {
	args := m.Called(ctx, telegramID)
	v, _ := args.Get(0).(*queries.CartView)
	return v, args.Error(1)
}

func listItems(n int, start time.Time) []*queries.UserListItem {
	items := make([]*queries.UserListItem, n)
	for i := range items {
		items[i] = &queries.UserListItem{ID: uuid.New(), CreatedAt: start.Add(-time.Duration(i) * time.Minute)}
	}
	return items
}

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	gotTS, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(ts, id))
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, id, gotID)

	for _, bad := range []string{"", "!!!", "djI6MTIz", "djE6bm90LWEtbnVtYmVy"} {
		_, _, err := queries.DecodeAfterCursor(bad)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor, bad)
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}

func TestUserQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("get maps a missing row to user not found", func(t *testing.T) {
		store := &userStore{}
		store.On("FindByTelegramID", ctx, "42").Return(nil, notFound())

		_, err := queries.NewUserQueries(store).GetByTelegramID(ctx, " 42 ")
		assert.True(t, errs.Is(err, errs.ErrUserNotFound))
		store.AssertExpectations(t)
	})

	t.Run("get rejects a malformed telegram id without touching the store", func(t *testing.T) {
		store := &userStore{}

		_, err := queries.NewUserQueries(store).GetByTelegramID(ctx, "abc")
		assert.True(t, errs.Is(err, errs.ErrValidation))
		store.AssertNotCalled(t, "FindByTelegramID", mock.Anything, mock.Anything)
	})

	t.Run("list returns a next cursor when more rows exist", func(t *testing.T) {
		store := &userStore{}
		rows := listItems(3, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		store.On("ListFirstPage", ctx, 3).Return(rows, nil)

		page, next, err := queries.NewUserQueries(store).List(ctx, nil, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		require.NotNil(t, next)

		ts, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID, id)
		assert.True(t, rows[1].CreatedAt.Equal(ts))
	})

	t.Run("list follows the cursor with a keyset query", func(t *testing.T) {
		store := &userStore{}
		last := listItems(1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))[0]
		store.On("ListKeyset", ctx, mock.MatchedBy(last.CreatedAt.Equal), last.ID, 3).
			Return([]*queries.UserListItem{}, nil)

		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(last.CreatedAt, last.ID)}
		page, next, err := queries.NewUserQueries(store).List(ctx, cursor, 2)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.Nil(t, next)
		store.AssertExpectations(t)
	})

	t.Run("list rejects a broken cursor", func(t *testing.T) {
		_, _, err := queries.NewUserQueries(&userStore{}).List(ctx, &queries.Cursor{After: "nope"}, 10)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestCartQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cart reads as empty", func(t *testing.T) {
		store := &cartStore{}
		store.On("FindByTelegramID", ctx, "7001").Return(nil, notFound())

		c, err := queries.NewCartQueries(store).GetCart(ctx, "7001")
		require.NoError(t, err)
		assert.Equal(t, "7001", c.TelegramID)
		assert.NotNil(t, c.Items)
		assert.Empty(t, c.Items)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		store := &cartStore{}
		boom := infra.WrapRepoErr(discard, infra.KindDBFailure, "boom", errs.New("connection reset"))
		store.On("FindByTelegramID", ctx, "7001").Return(nil, boom)

		_, err := queries.NewCartQueries(store).GetCart(ctx, "7001")
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
