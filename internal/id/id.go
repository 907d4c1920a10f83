package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// importPrefix marks ids of records created by the SMS import.
const importPrefix = "sms-"

// FromTimestamp returns the deterministic id for a message imported at ts,
// e.g. "sms-1770537600000".
func FromTimestamp(ts time.Time) string {
	return importPrefix + strconv.FormatInt(ts.UnixMilli(), 10)
}

// ParseTimestamp recovers the source timestamp from an import id, with or
// without a Unique suffix.
func ParseTimestamp(id string) (time.Time, error) {
	if !IsImported(id) {
		return time.Time{}, fmt.Errorf("not an import id: %q", id)
	}
	digits, _, _ := strings.Cut(strings.TrimPrefix(id, importPrefix), "-")
	millis, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp in id %q: %w", id, err)
	}
	return time.UnixMilli(millis).UTC(), nil
}

// Unique returns base if it is free, otherwise base-N for the smallest
// N >= 1 that is.
func Unique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 1; ; n++ {
		if c := base + "-" + strconv.Itoa(n); !taken(c) {
			return c
		}
	}
}

// IsImported reports whether id was produced by FromTimestamp.
func IsImported(id string) bool {
	return strings.HasPrefix(id, importPrefix)
}

// NewManual returns a fresh id for a hand-entered expense.
func NewManual() string {
	return uuid.NewString()
}
