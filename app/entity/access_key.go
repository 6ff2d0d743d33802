package entity

import "time"

// ExpiresAtLayout is the persisted form of a key expiration: an RFC 3339
// timestamp at second precision, always rendered in UTC
// (e.g. 2026-08-30T12:00:00Z).
const ExpiresAtLayout = "2006-01-02T15:04:05Z07:00"

type AccessKey struct {
	ID        string
	ExpiresAt time.Time
}

func (k *AccessKey) ExpiresAtString() string {
	return k.ExpiresAt.UTC().Format(ExpiresAtLayout)
}

// Expired reports whether the key is no longer valid at now. A key expiring
// exactly at now is expired: validity requires now strictly before ExpiresAt.
func (k *AccessKey) Expired(now time.Time) bool {
	return !now.Before(k.ExpiresAt)
}

func ParseExpiresAt(value string) (time.Time, error) {
	return time.Parse(ExpiresAtLayout, value)
}
