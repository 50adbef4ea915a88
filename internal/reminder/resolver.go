package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps store calls and sends in flight within a run.
const DefaultConcurrency = 8

// Resolver turns due visits into reminder targets.
type Resolver struct {
	store    Store
	location *time.Location
	limit    int
	logger   *zap.Logger
}

func NewResolver(store Store, location *time.Location, limit int, logger *zap.Logger) *Resolver {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Resolver{store: store, location: location, limit: limit, logger: logger}
}

// Attendees returns one family target per attendee record of every visit,
// each paired with the visit it was found under, in visit order.
func (r *Resolver) Attendees(ctx context.Context, visits []Visit) ([]Target, error) {
	return r.perVisit(visits, func(v Visit) []Target {
		return r.attendeesFor(ctx, v)
	})
}

// CoveringNurses returns one staff target per NURSE role on the visit's study
// case whose assignment window contains now.
func (r *Resolver) CoveringNurses(ctx context.Context, visits []Visit, now time.Time) ([]Target, error) {
	return r.perVisit(visits, func(v Visit) []Target {
		return r.nursesFor(ctx, v, now)
	})
}

// Starters returns one staff target per visit for the staff member who started it.
func (r *Resolver) Starters(ctx context.Context, visits []Visit) ([]Target, error) {
	return r.perVisit(visits, func(v Visit) []Target {
		if v.StarterID == "" {
			return nil
		}
		return []Target{{UserID: v.StarterID, User: r.user(ctx, v.StarterID), Visit: v, Staff: true}}
	})
}

func (r *Resolver) attendeesFor(ctx context.Context, v Visit) []Target {
	attendees, err := r.store.ListMeetingAttendees(ctx, v.ID)
	if err != nil {
		r.logger.Warn("listing meeting attendees failed", zap.String("visit_id", v.ID), zap.Error(err))
		return nil
	}
	r.logger.Debug("meeting attendees", zap.String("visit_id", v.ID), zap.Int("count", len(attendees)))

	targets := make([]Target, 0, len(attendees))
	for _, a := range attendees {
		targets = append(targets, Target{UserID: a.UserID, User: r.user(ctx, a.UserID), Visit: v})
	}
	return targets
}

func (r *Resolver) nursesFor(ctx context.Context, v Visit, now time.Time) []Target {
	roles, err := r.store.ListStudyCaseRoles(ctx, v.StudyCaseID)
	if err != nil {
		r.logger.Warn("listing study case roles failed",
			zap.String("visit_id", v.ID), zap.String("study_case_id", v.StudyCaseID), zap.Error(err))
		return nil
	}

	var targets []Target
	for _, role := range roles {
		ok, err := RoleEligible(role, now, r.location)
		if err != nil {
			r.logger.Warn("study case role has unreadable dates, skipping",
				zap.String("study_case_id", role.StudyCaseID), zap.String("user_id", role.UserID), zap.Error(err))
			continue
		}
		if !ok {
			r.logger.Debug("skip role", zap.String("user_id", role.UserID), zap.String("role", role.Role),
				zap.String("from", role.FromDate), zap.String("to", role.ToDate))
			continue
		}
		targets = append(targets, Target{UserID: role.UserID, User: r.user(ctx, role.UserID), Visit: v, Staff: true})
	}
	return targets
}

// user returns nil when the user is missing or the lookup fails.
func (r *Resolver) user(ctx context.Context, id string) *User {
	u, err := r.store.GetUser(ctx, id)
	if err != nil {
		r.logger.Warn("user lookup failed", zap.String("user_id", id), zap.Error(err))
		return nil
	}
	return u
}

// perVisit runs fn for every visit with at most r.limit in flight and
// concatenates the results in visit order.
func (r *Resolver) perVisit(visits []Visit, fn func(Visit) []Target) ([]Target, error) {
	results := make([][]Target, len(visits))
	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, v := range visits {
		g.Go(func() (err error) {
			defer recoverInto(&err)
			results[i] = fn(v)
			return nil
		})
	}
	err := g.Wait()

	var targets []Target
	for _, ts := range results {
		targets = append(targets, ts...)
	}
	return targets, err
}

// RoleEligible reports whether role is a NURSE assignment in effect at now.
// Both bounds are inclusive and an empty bound is open-ended.
func RoleEligible(role StudyCaseRole, now time.Time, loc *time.Location) (bool, error) {
	if role.Role != RoleNurse {
		return false, nil
	}
	if role.FromDate != "" {
		from, err := ParseTimestamp(role.FromDate, loc)
		if err != nil {
			return false, fmt.Errorf("fromDate: %w", err)
		}
		if now.Before(from) {
			return false, nil
		}
	}
	if role.ToDate != "" {
		to, err := ParseTimestamp(role.ToDate, loc)
		if err != nil {
			return false, fmt.Errorf("toDate: %w", err)
		}
		if now.After(to) {
			return false, nil
		}
	}
	return true, nil
}

// recoverInto must be deferred directly.
func recoverInto(err *error) {
	if e := recover(); e != nil {
		*err = panicError(e)
	}
}

func panicError(e any) error {
	if pe, ok := e.(error); ok {
		return fmt.Errorf("panic: %w", pe)
	}
	return fmt.Errorf("panic: %v", e)
}
