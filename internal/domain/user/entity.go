package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile holds the optional fields a client may send on every contact.
type Profile struct {
	Username  *string
	FirstName *string
	LastName  *string
	PhotoURL  *string
}

func NewProfile(username, firstName, lastName, photoURL string) Profile {
	return Profile{
		Username:  nonBlank(username),
		FirstName: nonBlank(firstName),
		LastName:  nonBlank(lastName),
		PhotoURL:  nonBlank(photoURL),
	}
}

// Merge overwrites fields for which incoming carries a value and keeps the rest.
func (p Profile) Merge(incoming Profile) Profile {
	out := p
	if incoming.Username != nil {
		out.Username = incoming.Username
	}
	if incoming.FirstName != nil {
		out.FirstName = incoming.FirstName
	}
	if incoming.LastName != nil {
		out.LastName = incoming.LastName
	}
	if incoming.PhotoURL != nil {
		out.PhotoURL = incoming.PhotoURL
	}
	return out
}

// User is a newly contacted storefront user. Stored users are read back as views.
type User struct {
	id         uuid.UUID
	telegramID TelegramID
	profile    Profile
	createdAt  time.Time
}

func NewUser(telegramID TelegramID, profile Profile, now time.Time) (*User, error) {
	if telegramID.IsZero() {
		return nil, ErrInvalidTelegramID
	}
	return &User{
		id:         uuid.New(),
		telegramID: telegramID,
		profile:    profile,
		createdAt:  now,
	}, nil
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) TelegramID() TelegramID { return u.telegramID }
func (u *User) Profile() Profile       { return u.profile }
func (u *User) CreatedAt() time.Time   { return u.createdAt }

// Inviter is the resolved owner of a referral code.
type Inviter struct {
	ID         uuid.UUID
	TelegramID string
	Username   *string
	Code       *string
}

// ReferredByLabel is the human-facing identifier stored on the invitee:
// the inviter's username when known, otherwise their telegram id.
func (i Inviter) ReferredByLabel() string {
	if i.Username != nil && *i.Username != "" {
		return *i.Username
	}
	return i.TelegramID
}

// IsSelf guards against a user attributing a signup to themselves.
func (i Inviter) IsSelf(invitee TelegramID) bool {
	return i.TelegramID == invitee.String()
}

// Attribution is the one-time link between a new user and their inviter.
type Attribution struct {
	InviteeID         uuid.UUID
	InviteeTelegramID TelegramID
	Inviter           Inviter
	At                time.Time
}

func NewAttribution(inviteeID uuid.UUID, invitee TelegramID, inviter Inviter, at time.Time) (Attribution, bool) {
	if inviter.IsSelf(invitee) || inviter.ID == inviteeID {
		return Attribution{}, false
	}
	return Attribution{
		InviteeID:         inviteeID,
		InviteeTelegramID: invitee,
		Inviter:           inviter,
		At:                at,
	}, true
}

func nonBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
