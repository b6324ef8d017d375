// Package document wraps the document store connection and index setup for
// reviews, clickstream events, deal snapshots, and admin audit logs.
package document

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes the document store connection and returns the
// database handle.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	log.Printf("document store connected: database=%s", dbName)

	return client.Database(dbName), nil
}

// CreateIndexes creates the secondary indexes required by §3/§4 of the
// specification: a unique index enforcing at most one review per
// (userId, listingType, listingId), and clickstream indexes supporting
// session/time-window queries.
func CreateIndexes(db *mongo.Database) error {
	ctx := context.Background()

	reviews := db.Collection("reviews")
	reviewIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "listingType", Value: 1},
				{Key: "listingId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "listingType", Value: 1}, {Key: "listingId", Value: 1}}},
	}
	if _, err := reviews.Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("failed to create reviews indexes: %w", err)
	}

	events := db.Collection("clickstream_events")
	eventIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "page", Value: 1}, {Key: "eventType", Value: 1}}},
		{Keys: bson.D{{Key: "listingType", Value: 1}, {Key: "listingId", Value: 1}}},
	}
	if _, err := events.Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("failed to create clickstream_events indexes: %w", err)
	}

	auditLogs := db.Collection("admin_audit_logs")
	auditIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actorId", Value: 1}, {Key: "at", Value: 1}}},
	}
	if _, err := auditLogs.Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create admin_audit_logs indexes: %w", err)
	}

	dealSnapshots := db.Collection("deal_snapshots")
	dealIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingType", Value: 1}, {Key: "listingId", Value: 1}}},
	}
	if _, err := dealSnapshots.Indexes().CreateMany(ctx, dealIndexes); err != nil {
		return fmt.Errorf("failed to create deal_snapshots indexes: %w", err)
	}

	return nil
}
