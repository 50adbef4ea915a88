package store

import (
	"context"
	"fmt"

	"MeetingReminder/internal/reminder"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names created by EnsureIndexes.
const (
	ByMeetingIndex   = "byMeeting"
	ByStudyCaseIndex = "byStudyCase"
)

// Collections names the collections holding each record type.
type Collections struct {
	Visits    string
	Attendees string
	Roles     string
	Users     string
}

// Repository reads reminder data from the document store.
type Repository struct {
	client      *Client
	collections Collections
}

func NewRepository(client *Client, collections Collections) *Repository {
	return &Repository{client: client, collections: collections}
}

func (r *Repository) ListVisits(ctx context.Context) ([]reminder.Visit, error) {
	var visits []reminder.Visit
	if err := r.client.ScanAll(ctx, r.collections.Visits, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// GetUser returns nil, nil when the user does not exist.
func (r *Repository) GetUser(ctx context.Context, id string) (*reminder.User, error) {
	var user reminder.User
	found, err := r.client.GetByID(ctx, r.collections.Users, id, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) ListMeetingAttendees(ctx context.Context, meetingID string) ([]reminder.MeetingAttendee, error) {
	var attendees []reminder.MeetingAttendee
	err := r.client.QueryByIndex(ctx, r.collections.Attendees, ByMeetingIndex, "meetingID", meetingID, &attendees)
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (r *Repository) ListStudyCaseRoles(ctx context.Context, studyCaseID string) ([]reminder.StudyCaseRole, error) {
	var roles []reminder.StudyCaseRole
	err := r.client.ScanWithFilter(ctx, r.collections.Roles, bson.M{"studyCaseID": studyCaseID}, &roles)
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// EnsureIndexes creates the secondary indexes the queries above rely on.
// Creating an index that already exists with the same definition is a no-op.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{r.collections.Attendees, mongo.IndexModel{
			Keys:    bson.D{{Key: "meetingID", Value: 1}},
			Options: options.Index().SetName(ByMeetingIndex),
		}},
		{r.collections.Roles, mongo.IndexModel{
			Keys:    bson.D{{Key: "studyCaseID", Value: 1}},
			Options: options.Index().SetName(ByStudyCaseIndex),
		}},
	}
	for _, idx := range indexes {
		if _, err := r.client.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index %s on %s: %w", *idx.model.Options.Name, idx.collection, err)
		}
	}
	return nil
}
