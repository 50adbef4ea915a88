package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the read side of the document store used by a run.
type Store interface {
	ListVisits(ctx context.Context) ([]Visit, error)
	// GetUser returns nil, nil when no user has the id.
	GetUser(ctx context.Context, id string) (*User, error)
	ListMeetingAttendees(ctx context.Context, meetingID string) ([]MeetingAttendee, error)
	ListStudyCaseRoles(ctx context.Context, studyCaseID string) ([]StudyCaseRole, error)
}

// Mailer sends a single plain-text email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Options are the per-deployment settings of a run.
type Options struct {
	Location      *time.Location
	Lookahead     time.Duration
	BaseURL       string
	TeamName      string
	Concurrency   int
	RemindStarter bool
}

// Service runs the reminder pipeline. It keeps no state between runs.
type Service struct {
	store  Store
	mailer Mailer
	clock  Clock
	opts   Options
	logger *zap.Logger
}

func NewService(store Store, mailer Mailer, clock Clock, opts Options, logger *zap.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = DefaultLookahead
	}
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	return &Service{store: store, mailer: mailer, clock: clock, opts: opts, logger: logger}
}

// Run executes one reminder run for a trigger and hands the payload back
// unchanged. Only a failure to list visits is returned; everything after that
// is logged and swallowed.
func (s *Service) Run(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	s.logger.Debug("trigger received", zap.ByteString("event", payload))
	if _, err := s.RunOnce(ctx); err != nil {
		return payload, err
	}
	return payload, nil
}

// RunOnce executes the pipeline and reports what happened.
func (s *Service) RunOnce(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	now := s.now()
	visits, err := s.store.ListVisits(ctx)
	if err != nil {
		logger.Error("listing visits failed", zap.Error(err))
		return nil, fmt.Errorf("list visits: %w", err)
	}

	filter := Filter{Location: s.opts.Location, Lookahead: s.opts.Lookahead, Logger: logger}
	due := filter.Due(visits, now)

	summary := &Summary{RunID: runID, Now: now, Visits: len(visits), Due: len(due)}
	logger.Info("visits filtered", zap.Int("visits", len(visits)), zap.Int("due", len(due)), zap.Time("now", now))
	if len(due) == 0 {
		return summary, nil
	}

	if err := s.deliver(ctx, logger, summary, due); err != nil {
		logger.Error("reminder run aborted", zap.Error(err))
	}
	logger.Info("reminder run finished",
		zap.Int("attendees", summary.Attendees), zap.Int("nurses", summary.Nurses), zap.Int("starters", summary.Starters),
		zap.Int("sent", summary.Sent), zap.Int("failed", summary.Failed))
	return summary, nil
}

func (s *Service) deliver(ctx context.Context, logger *zap.Logger, summary *Summary, due []Visit) (err error) {
	defer recoverInto(&err)

	resolver := NewResolver(s.store, s.opts.Location, s.opts.Concurrency, logger)
	dispatcher := NewDispatcher(s.mailer, s.opts.Location, s.opts.BaseURL, s.opts.TeamName, s.opts.Concurrency, logger)

	// A failed visit contributes no targets; the other visits' targets are still sent.
	attendees, err := resolver.Attendees(ctx, due)
	if err != nil {
		logger.Error("resolving attendees failed for some visits", zap.Error(err))
	}

	// Role windows are checked against a fresh reading of the clock.
	nurses, err := resolver.CoveringNurses(ctx, due, s.now())
	if err != nil {
		logger.Error("resolving covering nurses failed for some visits", zap.Error(err))
	}

	var starters []Target
	if s.opts.RemindStarter {
		if starters, err = resolver.Starters(ctx, due); err != nil {
			logger.Error("resolving starters failed for some visits", zap.Error(err))
		}
	}
	summary.Attendees, summary.Nurses, summary.Starters = len(attendees), len(nurses), len(starters)

	outcomes := dispatcher.Dispatch(ctx, attendees)
	if len(nurses) > 0 {
		outcomes = append(outcomes, dispatcher.Dispatch(ctx, nurses)...)
	}
	if len(starters) > 0 {
		outcomes = append(outcomes, dispatcher.Dispatch(ctx, starters)...)
	}

	summary.Outcomes = outcomes
	for _, o := range outcomes {
		if o.Sent() {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}
	return nil
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.opts.Location)
}
