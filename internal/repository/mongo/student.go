package mongo

import (
	"context"

	"github.com/hometuition/hometuition/internal/domain/student"
	ierr "github.com/hometuition/hometuition/internal/errors"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type studentRepository struct {
	client *mongodb.Client
	log    *logger.Logger
}

func NewStudentRepository(client *mongodb.Client, log *logger.Logger) student.Repository {
	return &studentRepository{
		client: client,
		log:    log,
	}
}

func (r *studentRepository) collection() *mongo.Collection {
	return r.client.Collection(mongodb.CollectionStudents)
}

func (r *studentRepository) Create(ctx context.Context, s *student.Student) error {
	r.log.Debugw("creating student", "student_id", s.StudentID, "name", s.Name)

	_, err := r.collection().InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHint("A student with this ID already exists").
				WithReportableDetails(map[string]interface{}{
					"student_id": s.StudentID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create student").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *studentRepository) GetByStudentID(ctx context.Context, studentID int) (*student.Student, error) {
	var s student.Student
	err := r.collection().FindOne(ctx, bson.M{"student_id": studentID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("student not found").
				WithHint("No student exists with this ID").
				WithReportableDetails(map[string]interface{}{
					"student_id": studentID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch student").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *studentRepository) List(ctx context.Context, filter *student.Filter) ([]*student.Student, error) {
	query := bson.M{}
	if filter != nil {
		if !filter.IncludeInactive {
			query["active"] = true
		}
		if len(filter.Statuses) > 0 {
			query["status"] = bson.M{"$in": filter.Statuses}
		}
		if filter.Class != nil {
			query["class"] = *filter.Class
		}
	} else {
		query["active"] = true
	}

	cursor, err := r.collection().Find(ctx, query, options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}}))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list students").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var students []*student.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode students").
			Mark(ierr.ErrDatabase)
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, s *student.Student) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"student_id": s.StudentID}, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update student").
			WithReportableDetails(map[string]interface{}{
				"student_id": s.StudentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	if result.MatchedCount == 0 {
		return ierr.NewError("student not found").
			WithHint("No student exists with this ID").
			WithReportableDetails(map[string]interface{}{
				"student_id": s.StudentID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *studentRepository) DeleteByStudentID(ctx context.Context, studentID int) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete student").
			WithReportableDetails(map[string]interface{}{
				"student_id": studentID,
			}).
			Mark(ierr.ErrDatabase)
	}
	if result.DeletedCount == 0 {
		return ierr.NewError("student not found").
			WithHint("No student exists with this ID").
			WithReportableDetails(map[string]interface{}{
				"student_id": studentID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
