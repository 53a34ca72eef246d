package events

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJournal appends every event to a MongoDB collection as an audit trail
type MongoJournal struct {
	collection *mongo.Collection
}

// NewMongoJournal creates a journal writing to the "events" collection of db
func NewMongoJournal(db *mongo.Database) *MongoJournal {
	return &MongoJournal{collection: db.Collection("events")}
}

// EnsureIndexes creates the indexes used to read a user's activity back
func (j *MongoJournal) EnsureIndexes(ctx context.Context) error {
	_, err := j.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	})
	return err
}

func (j *MongoJournal) Publish(ctx context.Context, ev Event) error {
	if _, err := j.collection.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("mongo: journal %s: %w", ev.Type, err)
	}
	return nil
}

// Recent returns the latest events performed by actorID, newest first
func (j *MongoJournal) Recent(ctx context.Context, actorID uint, limit int64) ([]Event, error) {
	var out []Event
	findOptions := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := j.collection.Find(ctx, bson.M{"actor_id": actorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close is a no-op; the Mongo client is owned by config.DB
func (j *MongoJournal) Close() error { return nil }
