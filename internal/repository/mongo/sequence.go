package mongo

import (
	"context"

	"github.com/hometuition/hometuition/internal/domain/sequence"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sequenceRepository struct {
	client *mongodb.Client
	log    *logger.Logger
}

func NewSequenceRepository(client *mongodb.Client, log *logger.Logger) sequence.Repository {
	return &sequenceRepository{
		client: client,
		log:    log,
	}
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int    `bson:"value"`
}

// Next increments the named counter document and returns the new value.
// The $inc upsert is a single atomic operation on the server, so two
// concurrent enrollments always observe distinct values.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDocument
	err := r.client.Collection(mongodb.CollectionCounters).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"value": 1}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to advance sequence").
			WithReportableDetails(map[string]interface{}{
				"sequence": name,
			}).
			Mark(ierr.ErrDatabase)
	}
	return counter.Value, nil
}
