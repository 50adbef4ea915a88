package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const meetingPath = "/Mother/meeting/"

const staffTemplate = `Dear %s

Your %s Virtual visit is about to start.

Please join the visit at %s.

%s Virtual Team`

const familyTemplate = `Dear %s

This is a friendly reminder that your %s meeting will start shortly, at %s.

Please go to the following link to start your visit:
%s

If the link above does not work, please try copying it into your web browser.

Thank you,
%s Virtual Team`

// Dispatcher formats and sends reminder emails.
type Dispatcher struct {
	mailer   Mailer
	location *time.Location
	baseURL  string
	teamName string
	limit    int
	logger   *zap.Logger
}

func NewDispatcher(mailer Mailer, location *time.Location, baseURL, teamName string, limit int, logger *zap.Logger) *Dispatcher {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Dispatcher{
		mailer:   mailer,
		location: location,
		baseURL:  strings.TrimRight(baseURL, "/"),
		teamName: teamName,
		limit:    limit,
		logger:   logger,
	}
}

// Dispatch sends one email per target and returns one outcome per target in
// the same order. A failed send is recorded in its outcome and does not stop
// the others.
func (d *Dispatcher) Dispatch(ctx context.Context, targets []Target) []Outcome {
	outcomes := make([]Outcome, len(targets))
	var g errgroup.Group
	g.SetLimit(d.limit)
	for i, t := range targets {
		g.Go(func() error {
			outcomes[i] = d.send(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (d *Dispatcher) send(ctx context.Context, t Target) (out Outcome) {
	out = Outcome{VisitID: t.Visit.ID, UserID: t.UserID, Staff: t.Staff}
	defer func() {
		if e := recover(); e != nil {
			out = failed(out, panicError(e))
		}
	}()

	if t.User == nil {
		return failed(out, fmt.Errorf("%w: %s", ErrUserNotFound, t.UserID))
	}
	out.Email = t.User.Email

	body, err := d.Compose(t)
	if err != nil {
		d.logger.Warn("composing reminder failed", zap.String("visit_id", t.Visit.ID), zap.Error(err))
		return failed(out, err)
	}

	id, err := d.mailer.Send(ctx, t.User.Email, Subject, body)
	if err != nil {
		d.logger.Error("reminder not sent",
			zap.String("visit_id", t.Visit.ID), zap.String("to", t.User.Email), zap.Bool("staff", t.Staff), zap.Error(err))
		return failed(out, err)
	}
	d.logger.Info("reminder sent",
		zap.String("visit_id", t.Visit.ID), zap.String("to", t.User.Email), zap.Bool("staff", t.Staff), zap.String("message_id", id))
	out.MessageID = id
	return out
}

// Compose renders the staff or family body for t.
func (d *Dispatcher) Compose(t Target) (string, error) {
	at, err := FormatStartTime(t.Visit, d.location)
	if err != nil {
		return "", err
	}
	if t.Staff {
		return fmt.Sprintf(staffTemplate, t.User.Name, d.teamName, at, d.teamName), nil
	}
	return fmt.Sprintf(familyTemplate, t.User.Name, d.teamName, at, JoinURL(d.baseURL, t.Visit.ID), d.teamName), nil
}

// FormatStartTime renders the visit start as 24-hour HH:MM in loc.
func FormatStartTime(v Visit, loc *time.Location) (string, error) {
	start, err := ParseTimestamp(v.StartTime, loc)
	if err != nil {
		return "", err
	}
	return start.In(loc).Format("15:04"), nil
}

func JoinURL(baseURL, visitID string) string {
	return baseURL + meetingPath + visitID
}
