package repository

// Interval represents candle resolution buckets.
type Interval string

const (
	IV5m  Interval = "5m"
	IV15m Interval = "15m"
	IV1h  Interval = "1h"
	IV4h  Interval = "4h"
	IV1d  Interval = "1d"
)

// IsValidInterval returns true if iv is a supported interval.
func IsValidInterval(iv Interval) bool {
	switch iv {
	case IV5m, IV15m, IV1h, IV4h, IV1d:
		return true
	default:
		return false
	}
}

// DefaultInterval returns the default interval.
func DefaultInterval() Interval { return IV1h }

// NormalizeInterval converts a raw string to a valid interval (or default).
func NormalizeInterval(s string) Interval {
	if s == "" {
		return DefaultInterval()
	}
	iv := Interval(s)
	if IsValidInterval(iv) {
		return iv
	}
	return DefaultInterval()
}

// Seconds returns the bar width in seconds.
func (iv Interval) Seconds() int64 {
	switch iv {
	case IV5m:
		return 5 * 60
	case IV15m:
		return 15 * 60
	case IV1h:
		return 60 * 60
	case IV4h:
		return 4 * 60 * 60
	case IV1d:
		return 24 * 60 * 60
	default:
		return 60 * 60
	}
}
