package id

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimestamp(t *testing.T) {
	ts := time.UnixMilli(1770537600123)
	assert.Equal(t, "sms-1770537600123", FromTimestamp(ts))
	assert.Equal(t, FromTimestamp(ts), FromTimestamp(ts.In(time.FixedZone("X", 3600))))
}

func TestParseTimestamp(t *testing.T) {
	ts := time.UnixMilli(1770537600123).UTC()
	got, err := ParseTimestamp(FromTimestamp(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestParseTimestamp_Suffixed(t *testing.T) {
	got, err := ParseTimestamp("sms-1770537600123-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1770537600123), got.UnixMilli())
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"sms-1": true, "sms-1-1": true}
	has := func(s string) bool { return taken[s] }

	assert.Equal(t, "sms-2", Unique("sms-2", has))
	assert.Equal(t, "sms-1-2", Unique("sms-1", has))
}

func TestParseTimestamp_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"1770537600123",
		"sms-",
		"sms-abc",
		"sms--1",
	}
	for _, input := range badInputs {
		_, err := ParseTimestamp(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestIsImported(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"sms-1", true},
		{"SMS-1", false},
		{"3f0c5b2e-1d3a-4c55-9a77-5e1f0c2d9b10", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImported(tt.input), "IsImported(%q)", tt.input)
	}
}

func TestNewManual(t *testing.T) {
	a, b := NewManual(), NewManual()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.False(t, IsImported(a))
}
