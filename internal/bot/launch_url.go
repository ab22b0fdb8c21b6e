package bot

import "net/url"

// LaunchURL appends startapp=<payload> and ref=<code> to the Mini-App URL,
// skipping empty values. A base that does not parse as an absolute URL gets
// the query string concatenated verbatim.
func LaunchURL(base, payload, code string) string {
	u, err := url.Parse(base)
	if err == nil && u.Scheme != "" && u.Host != "" {
		q := u.Query()
		setNonEmpty(q, "startapp", payload)
		setNonEmpty(q, "ref", code)
		u.RawQuery = q.Encode()
		return u.String()
	}

	q := url.Values{}
	setNonEmpty(q, "startapp", payload)
	setNonEmpty(q, "ref", code)
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
