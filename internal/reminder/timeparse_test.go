package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"plain", "2024-01-01T10:05:00", at(10, 5, 0)},
		{"plain fractional", "2024-01-01T10:05:00.250", at(10, 5, 0).Add(250 * time.Millisecond)},
		{"minutes only", "2024-01-01T10:05", at(10, 5, 0)},
		{"date only", "2024-01-01", at(0, 0, 0)},
		{"offset", "2024-01-01T12:05:00-05:00", at(10, 5, 0)},
		{"utc z", "2024-01-01T17:05:00.000Z", at(10, 5, 0)},
		{"utc z without fraction", "2024-01-01T17:05:00Z", at(10, 5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in, mountain)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, mountain, got.Location())
		})
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "10:05", "2024-13-01T10:00:00"} {
		_, err := ParseTimestamp(in, mountain)
		assert.ErrorIs(t, err, ErrUnparseableTime, in)
	}
}
