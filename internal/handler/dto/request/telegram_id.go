package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errTelegramIDType = errors.New("telegramId must be a string or an integer")

// TelegramID accepts a JSON string or integer. Mini-App clients send the id
// from initData as a number, the admin panel sends it as a string.
type TelegramID string

func (t *TelegramID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TelegramID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errTelegramIDType
	}
	if _, err := n.Int64(); err != nil {
		return errTelegramIDType
	}
	*t = TelegramID(n.String())
	return nil
}

func (t TelegramID) String() string { return string(t) }

// OptionalTelegramID returns nil for an absent id.
func OptionalTelegramID(t TelegramID) *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}
