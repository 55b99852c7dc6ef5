//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"portcall/internal/berths/repository"
	"portcall/pkg/client"
	"portcall/pkg/logger"
	"portcall/pkg/model"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "portcall"
	ConnectionTimeout   = 10 * time.Second
	BerthsCollection    = repository.CollectionName
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	testLogger := logger.New(logger.Config{
		Service: "integration-test",
		Level:   "debug",
		Format:  logger.JSON,
	})

	c := client.NewClient()
	c.SetMongo(testLogger, mongoURI, ConnectionTimeout)

	return &MongoHelper{
		Client:   c.Mongo,
		Database: c.Mongo.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanCollection removes documents but keeps the validator and indexes.
func (m *MongoHelper) CleanCollection(t *testing.T, name string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := m.Database.Collection(name).DeleteMany(ctx, bson.D{})
	if err != nil {
		t.Fatalf("failed to clean collection %s: %v", name, err)
	}
	t.Logf("Cleaned %d documents from collection: %s", result.DeletedCount, name)
}

// FindBerth reads the stored document directly, bypassing the service.
func (m *MongoHelper) FindBerth(t *testing.T, name string) *model.Berth {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var b model.Berth
	if err := m.Database.Collection(BerthsCollection).FindOne(ctx, bson.M{"_id": name}).Decode(&b); err != nil {
		t.Fatalf("failed to load berth %s: %v", name, err)
	}
	return &b
}
