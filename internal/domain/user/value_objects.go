package user

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var (
	ErrInvalidTelegramID   = errors.New("invalid telegram id")
	ErrInvalidReferralCode = errors.New("invalid referral code")
)

const (
	ReferralCodeLength = 6
	// ReferralCodeAttempts bounds generate-and-probe rounds before giving up.
	ReferralCodeAttempts = 5

	referralAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	refPayloadPrefix = "ref_"
)

// TelegramID is the stable external identity of a user, kept as a decimal string.
type TelegramID struct {
	value string
}

func NewTelegramID(s string) (TelegramID, error) {
	s = strings.TrimSpace(s)
	if !isDigits(strings.TrimPrefix(s, "-")) || len(s) > 20 {
		return TelegramID{}, ErrInvalidTelegramID
	}
	return TelegramID{value: s}, nil
}

func (t TelegramID) String() string { return t.value }
func (t TelegramID) IsZero() bool   { return t.value == "" }

// CodeGenerator produces candidate referral codes.
type CodeGenerator interface {
	Generate() (string, error)
}

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() CodeGenerator {
	return RandomCodeGenerator{}
}

// Generate returns ReferralCodeLength lowercase base36 characters.
func (RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(referralAlphabet)))
	buf := make([]byte, ReferralCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referralAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func ValidateReferralCode(code string) error {
	if len(code) != ReferralCodeLength {
		return ErrInvalidReferralCode
	}
	for _, r := range code {
		if !strings.ContainsRune(referralAlphabet, r) {
			return ErrInvalidReferralCode
		}
	}
	return nil
}

// Ref is the raw referral parameter a new user arrived with. It may be a
// referral code, a "ref_"-prefixed code from a bot payload, or a raw
// numeric telegram id of the inviter.
type Ref struct {
	raw string
}

func ParseRef(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(refPayloadPrefix) && strings.EqualFold(raw[:len(refPayloadPrefix)], refPayloadPrefix) {
		raw = raw[len(refPayloadPrefix):]
	}
	return Ref{raw: raw}
}

func (r Ref) IsEmpty() bool  { return r.raw == "" }
func (r Ref) String() string { return r.raw }

// Code is the lookup key for the referral-code resolution step.
func (r Ref) Code() string {
	return strings.ToLower(r.raw)
}

// TelegramID is the fallback resolution step, only for all-digit refs.
func (r Ref) TelegramID() (TelegramID, bool) {
	if !isDigits(r.raw) {
		return TelegramID{}, false
	}
	id, err := NewTelegramID(r.raw)
	if err != nil {
		return TelegramID{}, false
	}
	return id, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
