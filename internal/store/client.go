package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is a thin document-store layer over a Mongo database. Every method
// decodes the matched documents into out, which must be a pointer.
type Client struct {
	db *mongo.Database
}

func NewClient(db *mongo.Database) *Client {
	return &Client{db: db}
}

// ScanAll reads every document in a collection.
func (c *Client) ScanAll(ctx context.Context, collection string, out interface{}) error {
	return c.find(ctx, collection, bson.M{}, out)
}

// GetByID reads the document whose _id is id. found is false when there is none.
func (c *Client) GetByID(ctx context.Context, collection, id string, out interface{}) (bool, error) {
	err := c.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// QueryByIndex reads the documents whose key equals value, hinting the named
// index. If the server has no index by that name the query is retried
// without the hint.
func (c *Client) QueryByIndex(ctx context.Context, collection, index, key string, value interface{}, out interface{}) error {
	filter := bson.M{key: value}
	err := c.find(ctx, collection, filter, out, options.Find().SetHint(index))
	if !isBadHint(err) {
		return err
	}
	return c.find(ctx, collection, filter, out)
}

const badHintMessage = "hint provided does not correspond to an existing index"

func isBadHint(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorMessage(badHintMessage)
}

// ScanWithFilter reads the documents matching filter.
func (c *Client) ScanWithFilter(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	return c.find(ctx, collection, filter, out)
}

func (c *Client) find(ctx context.Context, collection string, filter bson.M, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := c.db.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return fmt.Errorf("find in %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}
