package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/repository/kv"
)

const (
	slotsCollection   = "slots"
	reportsCollection = "daily_reports"
)

// ReportArchive stores closing reports.
type ReportArchive interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// MongoDBRepository keeps the shop slots as documents and archives daily reports.
// Slot writes are independent; a sale commit is not atomic on this backend.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

var (
	_ kv.Store      = (*MongoDBRepository)(nil)
	_ ReportArchive = (*MongoDBRepository)(nil)
)

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Get loads a slot document by key.
func (r *MongoDBRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var doc slotDocument
	err := r.collection(slotsCollection).FindOne(ctx, slotFilter(key)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set upserts a slot document.
func (r *MongoDBRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.collection(slotsCollection).UpdateOne(ctx, slotFilter(key), slotUpdate(value, time.Now()), options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func slotFilter(key string) bson.M {
	return bson.M{"_id": key}
}

func slotUpdate(value string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{"value": value, "updated_at": now.UTC()}}
}

// SaveDailyReport stores the report, replacing an earlier one for the same day.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	_, err := r.collection(reportsCollection).ReplaceOne(ctx,
		reportFilter(report),
		report,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save daily report: %w", err)
	}
	return nil
}

func reportFilter(report models.DailyReport) bson.M {
	return bson.M{"date": report.Date}
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
