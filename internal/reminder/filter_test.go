package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newFilter(t *testing.T) Filter {
	return Filter{Location: mountain, Lookahead: DefaultLookahead, Logger: zaptest.NewLogger(t)}
}

func startAt(ts time.Time) string {
	return ts.Format("2006-01-02T15:04:05")
}

func TestIsDueWindow(t *testing.T) {
	f := newFilter(t)
	now := at(10, 0, 0)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"five minutes ahead", at(10, 5, 0), true},
		{"exactly at the boundary", now.Add(20 * time.Minute), true},
		{"one second past the boundary", now.Add(20*time.Minute + time.Second), false},
		{"starting right now", now, false},
		{"already started", now.Add(-time.Second), false},
		{"tomorrow", now.Add(24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Visit{ID: "v1", Status: "SCHEDULED", StartTime: startAt(tt.start)}
			assert.Equal(t, tt.want, f.IsDue(v, now))
		})
	}
}

func TestIsDueSkipsEndedAndCanceled(t *testing.T) {
	f := newFilter(t)
	now := at(10, 0, 0)
	for _, status := range []string{StatusEnded, StatusCanceled} {
		for _, start := range []string{startAt(at(10, 5, 0)), "not a time"} {
			v := Visit{ID: "v1", Status: status, StartTime: start}
			assert.False(t, f.IsDue(v, now), "%s %s", status, start)
		}
	}
}

func TestIsDueFailsOpenOnUnreadableStart(t *testing.T) {
	f := newFilter(t)
	assert.True(t, f.IsDue(Visit{ID: "v1", Status: "SCHEDULED", StartTime: "soon"}, at(10, 0, 0)))
	assert.True(t, f.IsDue(Visit{ID: "v2", Status: "SCHEDULED"}, at(10, 0, 0)))
}

func TestIsDueUTCStart(t *testing.T) {
	f := newFilter(t)
	v := Visit{ID: "v1", Status: "ACTIVE", StartTime: "2024-01-01T17:10:00.000Z"}
	assert.True(t, f.IsDue(v, at(10, 0, 0)))
	assert.False(t, f.IsDue(v, at(9, 0, 0)))
}

func TestDuePreservesOrder(t *testing.T) {
	f := newFilter(t)
	visits := []Visit{
		{ID: "a", Status: "SCHEDULED", StartTime: startAt(at(10, 10, 0))},
		{ID: "b", Status: StatusEnded, StartTime: startAt(at(10, 10, 0))},
		{ID: "c", Status: "SCHEDULED", StartTime: startAt(at(11, 0, 0))},
		{ID: "d", Status: "SCHEDULED", StartTime: startAt(at(10, 1, 0))},
	}
	due := f.Due(visits, at(10, 0, 0))
	var ids []string
	for _, v := range due {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"a", "d"}, ids)
	assert.Empty(t, f.Due(nil, at(10, 0, 0)))
}
