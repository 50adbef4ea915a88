package reminder

import (
	"errors"
	"time"
)

// Visit statuses that never receive a reminder.
const (
	StatusEnded    = "HAS_ENDED"
	StatusCanceled = "CANCELED"
)

// RoleNurse is the study case role that receives staff reminders.
const RoleNurse = "NURSE"

// Subject is used for every reminder email.
const Subject = "Reminder that visit starting soon"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnparseableTime = errors.New("unparseable timestamp")
)

// Visit is a scheduled virtual meeting. It is written by the scheduling system and only read here.
type Visit struct {
	ID          string `bson:"_id" json:"id"`
	Status      string `bson:"status" json:"status"`
	StartTime   string `bson:"startTime" json:"startTime"`     // ISO-8601, local or UTC "Z" form
	StudyCaseID string `bson:"studyCaseID" json:"studyCaseID"` // Case the visit belongs to
	StarterID   string `bson:"starterID" json:"starterID"`     // Staff member who started the case
}

// StudyCaseRole assigns a user to a study case. Empty dates are open-ended.
type StudyCaseRole struct {
	StudyCaseID string `bson:"studyCaseID" json:"studyCaseID"`
	UserID      string `bson:"userID" json:"userID"`
	Role        string `bson:"role" json:"role"`
	FromDate    string `bson:"fromDate,omitempty" json:"fromDate,omitempty"`
	ToDate      string `bson:"toDate,omitempty" json:"toDate,omitempty"`
}

// MeetingAttendee links a visit to a participating user.
type MeetingAttendee struct {
	ID        string `bson:"_id" json:"id"`
	MeetingID string `bson:"meetingID" json:"meetingID"`
	UserID    string `bson:"userID" json:"userID"`
}

type User struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Target pairs a recipient with the visit they are reminded about.
// A nil User means the lookup came back empty.
type Target struct {
	UserID string
	User   *User
	Visit  Visit
	Staff  bool
}

// Outcome is the result of one send, in the same order as the targets dispatched.
type Outcome struct {
	VisitID   string `json:"visit_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Staff     bool   `json:"staff"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

func failed(o Outcome, err error) Outcome {
	o.Err = err
	o.Error = err.Error()
	return o
}

// Sent reports whether the mail provider accepted the message.
func (o Outcome) Sent() bool { return o.Err == nil }

// Summary describes one run.
type Summary struct {
	RunID     string    `json:"run_id"`
	Now       time.Time `json:"now"`
	Visits    int       `json:"visits"`
	Due       int       `json:"due"`
	Attendees int       `json:"attendees"`
	Nurses    int       `json:"nurses"`
	Starters  int       `json:"starters"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}
