package mongo

import (
	"context"
	"time"

	"github.com/hometuition/hometuition/internal/domain/payment"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentRepository struct {
	client *mongodb.Client
	log    *logger.Logger
}

func NewPaymentRepository(client *mongodb.Client, log *logger.Logger) payment.Repository {
	return &paymentRepository{
		client: client,
		log:    log,
	}
}

func (r *paymentRepository) collection() *mongo.Collection {
	return r.client.Collection(mongodb.CollectionPayments)
}

// Upsert atomically creates or replaces the record holding the payment's
// natural key via a single findOneAndUpdate, so concurrent writers cannot
// produce duplicates for the same period.
func (r *paymentRepository) Upsert(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"student_id":         p.StudentID,
			"month":              p.Month,
			"status":             p.Status,
			"amount_paid":        p.AmountPaid,
			"is_installment":     p.IsInstallment,
			"installment_number": p.InstallmentNumber,
			"total_installments": p.TotalInstallments,
			"natural_key":        p.NaturalKey(),
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"_id":        p.ID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored payment.Payment
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"natural_key": p.NaturalKey()}, update, opts).
		Decode(&stored)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to upsert payment").
			WithReportableDetails(map[string]interface{}{
				"student_id": p.StudentID,
				"month":      p.Month,
			}).
			Mark(ierr.ErrDatabase)
	}
	return &stored, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *payment.Filter) ([]*payment.Payment, error) {
	query := bson.M{}
	if filter != nil {
		if filter.StudentID != nil {
			query["student_id"] = *filter.StudentID
		}
		if filter.Month != nil {
			query["month"] = *filter.Month
		}
		if filter.InstallmentsOnly {
			query["is_installment"] = true
		}
	}

	cursor, err := r.collection().Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var payments []*payment.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID int) ([]*payment.Payment, error) {
	return r.List(ctx, &payment.Filter{StudentID: &studentID})
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete payment").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) DeleteByStudent(ctx context.Context, studentID int) error {
	result, err := r.collection().DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete payments").
			WithReportableDetails(map[string]interface{}{
				"student_id": studentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	r.log.Debugw("deleted payment history", "student_id", studentID, "count", result.DeletedCount)
	return nil
}
