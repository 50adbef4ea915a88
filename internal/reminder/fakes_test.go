package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

var mountain = time.FixedZone("MST", -7*60*60)

func at(hh, mm, ss int) time.Time {
	return time.Date(2024, 1, 1, hh, mm, ss, 0, mountain)
}

type fakeStore struct {
	mu        sync.Mutex
	visits    []Visit
	users     map[string]*User
	attendees map[string][]MeetingAttendee
	roles     map[string][]StudyCaseRole

	visitsErr    error
	attendeesErr map[string]error
	rolesErr     map[string]error
	userErr      map[string]error

	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*User{},
		attendees:    map[string][]MeetingAttendee{},
		roles:        map[string][]StudyCaseRole{},
		attendeesErr: map[string]error{},
		rolesErr:     map[string]error{},
		userErr:      map[string]error{},
		calls:        map[string]int{},
	}
}

func (f *fakeStore) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeStore) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) ListVisits(ctx context.Context) ([]Visit, error) {
	f.count("ListVisits")
	return f.visits, f.visitsErr
}

func (f *fakeStore) GetUser(ctx context.Context, id string) (*User, error) {
	f.count("GetUser")
	if err := f.userErr[id]; err != nil {
		return nil, err
	}
	return f.users[id], nil
}

func (f *fakeStore) ListMeetingAttendees(ctx context.Context, meetingID string) ([]MeetingAttendee, error) {
	f.count("ListMeetingAttendees")
	if err := f.attendeesErr[meetingID]; err != nil {
		return nil, err
	}
	return f.attendees[meetingID], nil
}

func (f *fakeStore) ListStudyCaseRoles(ctx context.Context, studyCaseID string) ([]StudyCaseRole, error) {
	f.count("ListStudyCaseRoles")
	if err := f.rolesErr[studyCaseID]; err != nil {
		return nil, err
	}
	return f.roles[studyCaseID], nil
}

func (f *fakeStore) addUser(id, name string) {
	f.users[id] = &User{ID: id, Name: name, Email: id + "@example.org"}
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

// sentBodies returns the bodies passed to Send, keyed by recipient.
func (m *mockMailer) sentBodies() map[string][]string {
	bodies := map[string][]string{}
	for _, c := range m.Calls {
		if c.Method == "Send" {
			to := c.Arguments.String(1)
			bodies[to] = append(bodies[to], c.Arguments.String(3))
		}
	}
	return bodies
}
