// ABOUTME: Cache domain models shared by every cache backend
// ABOUTME: Defines the persisted record shape and the diagnostic statistics

package domain

import (
	"math"
	"time"
)

// CacheRecord is the serialized form of a cache entry.
// Timestamps are unix seconds with sub-second precision.
type CacheRecord struct {
	Data      string  `json:"data"`
	Timestamp float64 `json:"timestamp"`
	ExpiresAt float64 `json:"expires_at"`
}

// NewCacheRecord builds a record created at now that lives for ttl
func NewCacheRecord(data []byte, now time.Time, ttl time.Duration) CacheRecord {
	created := unixSeconds(now)
	return CacheRecord{
		Data:      string(data),
		Timestamp: created,
		ExpiresAt: created + ttl.Seconds(),
	}
}

// Expired reports whether now is strictly past the expiry time
func (r CacheRecord) Expired(now time.Time) bool {
	return unixSeconds(now) > r.ExpiresAt
}

// CreatedAt returns the creation time
func (r CacheRecord) CreatedAt() time.Time {
	return fromUnixSeconds(r.Timestamp)
}

// ExpiresTime returns the expiry time
func (r CacheRecord) ExpiresTime() time.Time {
	return fromUnixSeconds(r.ExpiresAt)
}

// CacheStats summarizes a cache scan
type CacheStats struct {
	Total   int `json:"total"`
	Expired int `json:"expired"`
	Valid   int `json:"valid"`
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
