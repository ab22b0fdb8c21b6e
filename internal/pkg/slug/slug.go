// Package slug turns human titles into constrained lowercase keys and
// finds a free variant of a key by probing a store.
package slug

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxLength   = 48
	MaxProbes   = 50
	fallbackKey = "item"
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya", 'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g",
}

// Make builds a key from title. The result only contains [a-z0-9-], never
// starts or ends with '-', and is never empty.
func Make(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if lat, ok := cyrillic[r]; ok {
			b.WriteString(lat)
			continue
		}
		b.WriteRune(r)
	}

	// Decompose and drop combining marks so "crème" becomes "creme".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, b.String())
	if err != nil {
		ascii = b.String()
	}

	var out strings.Builder
	dash := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out.WriteRune(r)
			dash = false
		default:
			if !dash && out.Len() > 0 {
				out.WriteByte('-')
				dash = true
			}
		}
	}

	key := strings.Trim(out.String(), "-")
	if len(key) > MaxLength {
		key = strings.Trim(key[:MaxLength], "-")
	}
	if key == "" {
		return fallbackKey
	}
	return key
}

// ExistsFunc reports whether key is already taken.
type ExistsFunc func(ctx context.Context, key string) (bool, error)

// EnsureUnique returns base if free, otherwise base-2, base-3, ... up to
// MaxProbes candidates, and finally base-<unix millis>. Two concurrent
// callers can still pick the same key; the store's unique constraint
// rejects the loser.
func EnsureUnique(ctx context.Context, base string, exists ExistsFunc, now func() time.Time) (string, error) {
	if base == "" {
		base = fallbackKey
	}

	for i := 1; i <= MaxProbes; i++ {
		candidate := base
		if i > 1 {
			candidate = base + "-" + strconv.Itoa(i)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	if now == nil {
		now = time.Now
	}
	return base + "-" + strconv.FormatInt(now().UnixMilli(), 10), nil
}
