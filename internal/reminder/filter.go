package reminder

import (
	"time"

	"go.uber.org/zap"
)

// DefaultLookahead is how far ahead of a visit's start reminders go out.
const DefaultLookahead = 20 * time.Minute

// Filter decides which visits are due for a reminder.
type Filter struct {
	Location  *time.Location
	Lookahead time.Duration
	Logger    *zap.Logger
}

// IsDue reports whether v starts after now and no later than now+Lookahead.
// Ended and canceled visits are never due. A start time that cannot be parsed
// makes the visit due (fail-open).
func (f Filter) IsDue(v Visit, now time.Time) bool {
	if v.Status == StatusEnded || v.Status == StatusCanceled {
		return false
	}
	start, err := ParseTimestamp(v.StartTime, f.Location)
	if err != nil {
		f.Logger.Warn("visit start time unreadable, including visit",
			zap.String("visit_id", v.ID), zap.String("start_time", v.StartTime), zap.Error(err))
		return true
	}
	lead := start.Sub(now)
	if lead > 0 && lead <= f.Lookahead {
		f.Logger.Debug("visit due", zap.String("visit_id", v.ID), zap.Duration("lead", lead))
		return true
	}
	f.Logger.Debug("visit not due", zap.String("visit_id", v.ID), zap.Duration("lead", lead))
	return false
}

// Due returns the due visits in input order.
func (f Filter) Due(visits []Visit, now time.Time) []Visit {
	var due []Visit
	for _, v := range visits {
		if f.IsDue(v, now) {
			due = append(due, v)
		}
	}
	return due
}
