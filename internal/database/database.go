package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes the MongoDB connection and returns the client together
// with a handle to the named database. The client is constructed once in main
// and passed by reference to everything that needs it; there is no package-level
// singleton.
func Connect(mongoURI, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second)

	log.Printf("Attempting to connect to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	// Verify liveness with a separate context; an unreachable server only
	// surfaces here, not at Connect.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.Println("✅ Connected to MongoDB")
	return client, client.Database(dbName), nil
}

// Disconnect releases the MongoDB connection. Called from main on
// SIGINT/SIGTERM after the HTTP server has drained.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
