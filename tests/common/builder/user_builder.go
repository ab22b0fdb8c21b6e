//go:build unit || e2e

package builder

import (
	"time"

	"tg-storefront/internal/domain/user"
	reqdto "tg-storefront/internal/handler/dto/request"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	TelegramID     string
	Username       string
	FirstName      string
	LastName       string
	PhotoURL       string
	ReferralCode   *string
	ReferredBy     *string
	ReferralsCount int
	CreatedAt      time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		TelegramID: "100200300",
		Username:   "duck_fan",
		FirstName:  "Ivan",
		LastName:   "Petrov",
		CreatedAt:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	tgID, err := user.NewTelegramID(u.TelegramID)
	if err != nil {
		return nil, err
	}
	profile := user.NewProfile(u.Username, u.FirstName, u.LastName, u.PhotoURL)
	return user.NewUser(tgID, profile, u.CreatedAt)
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:         uuid.New(),
		TelegramID: u.TelegramID,
		Username:   ptr.NonEmpty(u.Username),
		FirstName:  ptr.NonEmpty(u.FirstName),
		LastName:   ptr.NonEmpty(u.LastName),
		PhotoURL:   ptr.NonEmpty(u.PhotoURL),
		Referral: queries.ReferralView{
			Code:           u.ReferralCode,
			ReferredBy:     u.ReferredBy,
			ReferralsCount: u.ReferralsCount,
			Referrals:      []queries.ReferralEntryView{},
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.CreatedAt,
	}
}

func (u *UserBuilder) BuildRegisterRequestDTO() reqdto.RegisterUserRequest {
	return reqdto.RegisterUserRequest{
		TelegramID: reqdto.TelegramID(u.TelegramID),
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		PhotoURL:   u.PhotoURL,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithTelegramID(id string) *UserBuilder {
	u.TelegramID = id
	return u
}

func (u *UserBuilder) WithUsername(username string) *UserBuilder {
	u.Username = username
	return u
}

func (u *UserBuilder) WithoutUsername() *UserBuilder {
	u.Username = ""
	return u
}

func (u *UserBuilder) WithReferralCode(code string) *UserBuilder {
	u.ReferralCode = &code
	return u
}

func (u *UserBuilder) WithReferredBy(label string) *UserBuilder {
	u.ReferredBy = &label
	return u
}

func (u *UserBuilder) WithReferralsCount(n int) *UserBuilder {
	u.ReferralsCount = n
	return u
}
