package response

import (
	"time"

	"tg-storefront/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	TelegramID string           `json:"telegramId"`
	Username   *string          `json:"username"`
	FirstName  *string          `json:"firstName"`
	LastName   *string          `json:"lastName"`
	PhotoURL   *string          `json:"photoUrl"`
	Referral   ReferralResponse `json:"referral"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type ReferralResponse struct {
	Code           *string                 `json:"code"`
	ReferredBy     *string                 `json:"referredBy"`
	ReferredByCode *string                 `json:"referredByCode"`
	ReferredAt     *time.Time              `json:"referredAt"`
	ReferralsCount int                     `json:"referralsCount"`
	Referrals      []ReferralEntryResponse `json:"referrals"`
}

type ReferralEntryResponse struct {
	TelegramID string    `json:"telegramId"`
	At         time.Time `json:"at"`
}

type UserEnvelope struct {
	OK   bool          `json:"ok"`
	User *UserResponse `json:"user"`
}

func FromUserView(v *queries.UserView) (*UserEnvelope, error) {
	var u UserResponse
	if err := copier.CopyWithOption(&u, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if u.Referral.Referrals == nil {
		u.Referral.Referrals = []ReferralEntryResponse{}
	}
	return &UserEnvelope{OK: true, User: &u}, nil
}

type UserListResponse struct {
	OK         bool                    `json:"ok"`
	Users      []*queries.UserListItem `json:"users"`
	NextCursor *string                 `json:"nextCursor"`
}

func FromUserList(items []*queries.UserListItem, next *queries.Cursor) *UserListResponse {
	if items == nil {
		items = []*queries.UserListItem{}
	}
	resp := &UserListResponse{OK: true, Users: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
