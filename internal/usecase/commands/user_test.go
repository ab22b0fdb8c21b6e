//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsers(store *memStore) commands.UserCommands {
	return commands.NewUserUseCase(store, newReferrals(store), clock.NewMockClock(fixedNow), discardLogger())
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new user with a referral code", func(t *testing.T) {
		store := newMemStore()

		res, err := newUsers(store).RegisterUser(ctx, commands.RegisterUserRequest{
			TelegramID: "100200300",
			Username:   "duck_fan",
			FirstName:  "Ivan",
		})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.False(t, res.Referred)
		require.NotNil(t, res.ReferralCode)

		stored := store.users[res.UserID]
		require.NotNil(t, stored)
		assert.Equal(t, "100200300", stored.snap.TelegramID)
		assert.Equal(t, "duck_fan", *stored.snap.Profile.Username)
		assert.Nil(t, stored.snap.Profile.LastName)
		assert.Equal(t, *res.ReferralCode, *stored.snap.ReferralCode)
	})

	t.Run("second registration merges profile and keeps the code", func(t *testing.T) {
		store := newMemStore()
		uc := newUsers(store)

		first, err := uc.RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "100200300", Username: "duck_fan", FirstName: "Ivan"})
		require.NoError(t, err)

		second, err := uc.RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "100200300", LastName: "Petrov"})
		require.NoError(t, err)

		assert.False(t, second.Created)
		assert.Equal(t, first.UserID, second.UserID)
		assert.Equal(t, *first.ReferralCode, *second.ReferralCode)
		assert.Len(t, store.users, 1)

		profile := store.users[first.UserID].snap.Profile
		assert.Equal(t, "duck_fan", *profile.Username)
		assert.Equal(t, "Ivan", *profile.FirstName)
		assert.Equal(t, "Petrov", *profile.LastName)
	})

	t.Run("keep profile leaves an existing user untouched", func(t *testing.T) {
		store := newMemStore()
		existing := store.addUser("100200300", ptr.Of("duck_fan"), ptr.Of("abc123"))

		res, err := newUsers(store).RegisterUser(ctx, commands.RegisterUserRequest{
			TelegramID:  "100200300",
			Username:    "renamed",
			KeepProfile: true,
		})
		require.NoError(t, err)
		assert.Equal(t, existing.snap.ID, res.UserID)
		assert.Equal(t, "duck_fan", *existing.snap.Profile.Username)
	})

	t.Run("new user with ref is attributed", func(t *testing.T) {
		store := newMemStore()
		uc := newUsers(store)

		a, err := uc.RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "111", Username: "alice"})
		require.NoError(t, err)

		b, err := uc.RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "222", Ref: *a.ReferralCode})
		require.NoError(t, err)
		assert.True(t, b.Referred)
		assert.Equal(t, "alice", *store.users[b.UserID].snap.ReferredBy)
		assert.Equal(t, 1, store.users[a.UserID].referralsCount)
	})

	t.Run("ref is ignored for an existing user", func(t *testing.T) {
		store := newMemStore()
		inviter := store.addUser("111", ptr.Of("alice"), ptr.Of("abc123"))
		existing := store.addUser("222", nil, ptr.Of("def456"))

		res, err := newUsers(store).RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "222", Ref: "abc123"})
		require.NoError(t, err)
		assert.False(t, res.Referred)
		assert.Nil(t, existing.snap.ReferredBy)
		assert.Zero(t, inviter.referralsCount)
	})

	t.Run("unknown ref does not fail registration", func(t *testing.T) {
		store := newMemStore()

		res, err := newUsers(store).RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: "222", Ref: "nobody"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.False(t, res.Referred)
	})

	t.Run("invalid telegram id", func(t *testing.T) {
		for _, id := range []string{"", "abc", "12a"} {
			_, err := newUsers(newMemStore()).RegisterUser(ctx, commands.RegisterUserRequest{TelegramID: id})
			assert.True(t, errs.Is(err, errs.ErrValidation), id)
		}
	})
}
