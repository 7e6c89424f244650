package util

import (
	"net/url"
	"strings"
)

const redacted = "xxxxx"

var sensitiveKeys = map[string]struct{}{
	"password": {},
	"pass":     {},
	"passwd":   {},
	"token":    {},
	"secret":   {},
	"key":      {},
	"apikey":   {},
	"api_key":  {},
}

// RedactSecrets replaces every occurrence of the given secrets in s, raw or
// in their escaped URL forms, with a mask.
func RedactSecrets(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
		s = strings.ReplaceAll(s, url.QueryEscape(secret), redacted)
		s = strings.ReplaceAll(s, strings.TrimPrefix(url.UserPassword("", secret).String(), ":"), redacted)
	}
	return s
}

// RedactURL masks the known secrets, then credential query values and the
// userinfo password of rawURL. Values are masked in place so the rest of
// the URL stays byte-for-byte as built. Unparseable input is returned
// fully masked.
func RedactURL(rawURL string, secrets ...string) string {
	rawURL = RedactSecrets(rawURL, secrets...)
	u, err := url.Parse(rawURL)
	if err != nil {
		return redacted
	}
	out := rawURL
	if u.User != nil {
		if pw, ok := u.User.Password(); ok && pw != "" {
			out = strings.Replace(out, ":"+pw+"@", ":"+redacted+"@", 1)
		}
	}

	i := strings.IndexByte(out, '?')
	if i < 0 {
		return out
	}
	query, frag := out[i+1:], ""
	if j := strings.IndexByte(query, '#'); j >= 0 {
		query, frag = query[:j], query[j:]
	}
	pairs := strings.Split(query, "&")
	for n, pair := range pairs {
		k, _, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			pairs[n] = k + "=" + redacted
		}
	}
	return out[:i+1] + strings.Join(pairs, "&") + frag
}
