package mongodb

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/config"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionStudents = "students"
	CollectionPayments = "fee_payments"
	CollectionCounters = "counters"

	connectTimeout = 10 * time.Second
)

// Client wraps the driver client and exposes the named collections the
// repositories work against.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func NewClient(ctx context.Context, cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to MongoDB").
			Mark(ierr.ErrDatabase)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, ierr.WithError(err).
			WithHint("MongoDB is not reachable").
			Mark(ierr.ErrDatabase)
	}

	c := &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
		log:    log,
	}

	if err := c.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	log.Infow("connected to mongodb", "database", cfg.Mongo.Database)
	return c, nil
}

// Collection returns a handle to a named collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Disconnect closes the underlying connection pool
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// ensureIndexes creates the uniqueness indexes backing the natural keys:
// one student per studentId, one payment per (student, month).
func (c *Client) ensureIndexes(ctx context.Context) error {
	_, err := c.Collection(CollectionStudents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create student index").
			Mark(ierr.ErrDatabase)
	}

	_, err = c.Collection(CollectionPayments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "month", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "natural_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create payment indexes").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
