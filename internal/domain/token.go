package domain

import "time"

// AccessToken is a bearer credential issued by the identity endpoint.
// ExpiresAt is the absolute expiry in epoch seconds as supplied upstream.
type AccessToken struct {
	Value     string
	ExpiresAt int64
}

// ValidAt reports whether the token can still be presented at now.
func (t *AccessToken) ValidAt(now time.Time) bool {
	if t == nil || t.Value == "" {
		return false
	}
	return now.Unix() < t.ExpiresAt
}

func (t *AccessToken) ExpiryTime() time.Time {
	return time.Unix(t.ExpiresAt, 0)
}
