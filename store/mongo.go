package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"civicreport-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	reportsCollection = "reports"
	usersCollection   = "users"

	referenceIndex   = "referenceNumber_unique"
	duplicateKeyCode = 11000
)

// MongoReportStore keeps reports in the "reports" collection.
type MongoReportStore struct {
	reports *mongo.Collection
}

func NewMongoReportStore(db *mongo.Database) *MongoReportStore {
	return &MongoReportStore{reports: db.Collection(reportsCollection)}
}

// EnsureIndexes creates the lookup indexes used by dashboards and tracking.
func (s *MongoReportStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "referenceNumber", Value: 1}}, Options: options.Index().SetUnique(true).SetName(referenceIndex)},
		{Keys: bson.D{{Key: "reporterEmail", Value: 1}}},
		{Keys: bson.D{{Key: "assignedDepartment", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "ward", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}
	_, err := s.reports.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *MongoReportStore) Create(ctx context.Context, report models.Report) (models.Report, error) {
	report = report.Clone()
	report.Version = 1
	if _, err := s.reports.InsertOne(ctx, report); err != nil {
		if duplicateReference(err) {
			return models.Report{}, ErrDuplicateReference
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Report{}, ErrDuplicateID
		}
		return models.Report{}, fmt.Errorf("insert report: %w", err)
	}
	return report, nil
}

// duplicateReference tells a reference collision apart from an id collision
// by the violated index.
func duplicateReference(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == duplicateKeyCode && strings.Contains(e.Message, referenceIndex) {
			return true
		}
	}
	return false
}

func (s *MongoReportStore) Get(ctx context.Context, id string) (models.Report, error) {
	var report models.Report
	err := s.reports.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Report{}, ErrReportNotFound
		}
		return models.Report{}, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

func (s *MongoReportStore) List(ctx context.Context) ([]models.Report, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.reports.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

func (s *MongoReportStore) Update(ctx context.Context, report models.Report) (models.Report, error) {
	expected := report.Version
	report = report.Clone()
	report.Version = expected + 1

	res, err := s.reports.ReplaceOne(ctx, bson.M{"_id": report.ID, "version": expected}, report)
	if err != nil {
		return models.Report{}, fmt.Errorf("replace report: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := s.reports.CountDocuments(ctx, bson.M{"_id": report.ID})
		if err != nil {
			return models.Report{}, fmt.Errorf("check report: %w", err)
		}
		if count == 0 {
			return models.Report{}, ErrReportNotFound
		}
		return models.Report{}, ErrConflict
	}
	return report, nil
}

func (s *MongoReportStore) Delete(ctx context.Context, id string) error {
	res, err := s.reports.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *MongoReportStore) ReferenceExists(ctx context.Context, ref string) (bool, error) {
	count, err := s.reports.CountDocuments(ctx, bson.M{"referenceNumber": ref})
	if err != nil {
		return false, fmt.Errorf("count references: %w", err)
	}
	return count > 0, nil
}

// MongoUserStore keeps accounts in the "users" collection with emails
// stored lowercased.
type MongoUserStore struct {
	users *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection(usersCollection)}
}

func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
