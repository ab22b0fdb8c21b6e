//go:build unit

package user_test

import (
	"testing"
	"time"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "100200300", actual.TelegramID().String())
		want := user.Profile{
			Username:  ptr.Of("duck_fan"),
			FirstName: ptr.Of("Ivan"),
			LastName:  ptr.Of("Petrov"),
		}
		if diff := cmp.Diff(want, actual.Profile()); diff != "" {
			t.Errorf("Profile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("telegram id validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "numeric id",
				mutate: func(b *builder.UserBuilder) { b.WithTelegramID("42") },
			},
			{
				name:   "negative id of a group chat",
				mutate: func(b *builder.UserBuilder) { b.WithTelegramID("-1001234") },
			},
			{
				name:   "empty id",
				mutate: func(b *builder.UserBuilder) { b.WithTelegramID("") },
				errIs:  user.ErrInvalidTelegramID,
			},
			{
				name:   "non numeric id",
				mutate: func(b *builder.UserBuilder) { b.WithTelegramID("abc123") },
				errIs:  user.ErrInvalidTelegramID,
			},
			{
				name:   "too long id",
				mutate: func(b *builder.UserBuilder) { b.WithTelegramID("123456789012345678901") },
				errIs:  user.ErrInvalidTelegramID,
			},
		})
	})
}

func TestProfile_Merge(t *testing.T) {
	stored := user.NewProfile("old_name", "Ivan", "", "https://cdn.example.com/a.png")
	incoming := user.NewProfile("new_name", "  ", "Petrov", "")

	got := stored.Merge(incoming)

	want := user.Profile{
		Username:  ptr.Of("new_name"),
		FirstName: ptr.Of("Ivan"),
		LastName:  ptr.Of("Petrov"),
		PhotoURL:  ptr.Of("https://cdn.example.com/a.png"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantEmpty  bool
		wantCode   string
		wantNumber bool
	}{
		{name: "blank", raw: "   ", wantEmpty: true},
		{name: "plain code", raw: "Ab12cd", wantCode: "ab12cd"},
		{name: "bot payload prefix", raw: "ref_ab12cd", wantCode: "ab12cd"},
		{name: "prefix only is kept", raw: "ref_", wantCode: "ref_"},
		{name: "numeric telegram id", raw: " 777000 ", wantCode: "777000", wantNumber: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := user.ParseRef(tt.raw)
			assert.Equal(t, tt.wantEmpty, ref.IsEmpty())
			if tt.wantEmpty {
				return
			}
			assert.Equal(t, tt.wantCode, ref.Code())
			_, ok := ref.TelegramID()
			assert.Equal(t, tt.wantNumber, ok)
		})
	}
}

func TestRandomCodeGenerator(t *testing.T) {
	gen := user.NewRandomCodeGenerator()
	seen := make(map[string]struct{})

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.NoError(t, user.ValidateReferralCode(code))
		seen[code] = struct{}{}
	}

	// 36^6 codes; 200 draws colliding more than once would point at a broken source
	assert.GreaterOrEqual(t, len(seen), 199)
}

func TestValidateReferralCode(t *testing.T) {
	assert.NoError(t, user.ValidateReferralCode("a1b2c3"))
	assert.ErrorIs(t, user.ValidateReferralCode("a1b2c"), user.ErrInvalidReferralCode)
	assert.ErrorIs(t, user.ValidateReferralCode("A1B2C3"), user.ErrInvalidReferralCode)
	assert.ErrorIs(t, user.ValidateReferralCode("a1b2-3"), user.ErrInvalidReferralCode)
}

func TestNewAttribution(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	invitee, err := user.NewTelegramID("2002")
	require.NoError(t, err)
	inviteeID := uuid.New()

	t.Run("links a different inviter", func(t *testing.T) {
		inviter := user.Inviter{ID: uuid.New(), TelegramID: "1001", Username: ptr.Of("alice")}

		got, ok := user.NewAttribution(inviteeID, invitee, inviter, now)

		require.True(t, ok)
		assert.Equal(t, inviteeID, got.InviteeID)
		assert.Equal(t, "alice", got.Inviter.ReferredByLabel())
		assert.Equal(t, now, got.At)
	})

	t.Run("self referral by telegram id", func(t *testing.T) {
		inviter := user.Inviter{ID: uuid.New(), TelegramID: "2002"}

		_, ok := user.NewAttribution(inviteeID, invitee, inviter, now)

		assert.False(t, ok)
	})

	t.Run("self referral by user id", func(t *testing.T) {
		inviter := user.Inviter{ID: inviteeID, TelegramID: "3003"}

		_, ok := user.NewAttribution(inviteeID, invitee, inviter, now)

		assert.False(t, ok)
	})

	t.Run("label falls back to telegram id", func(t *testing.T) {
		inviter := user.Inviter{ID: uuid.New(), TelegramID: "1001", Username: ptr.Of("")}

		assert.Equal(t, "1001", inviter.ReferredByLabel())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
