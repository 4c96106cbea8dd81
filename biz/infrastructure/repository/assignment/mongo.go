package assignment

import (
	"context"
	"errors"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "assignment"

	submissionIDField = consts.Submissions + "._id"
)

type IMongoMapper interface {
	Insert(ctx context.Context, assignment *Assignment) error
	FindOne(ctx context.Context, id string) (*Assignment, error)
	FindByCourseID(ctx context.Context, courseID string) ([]*Assignment, error)
	FindByCourseIDs(ctx context.Context, courseIDs []string) ([]*Assignment, error)
	FindByInstructor(ctx context.Context, instructorID string) ([]*Assignment, error)
	FindByStudent(ctx context.Context, studentID string) ([]*Assignment, error)
	// PushSubmission appends sub unless the student already submitted, in
	// which case it returns consts.ErrAlreadySubmitted and changes nothing.
	PushSubmission(ctx context.Context, id string, sub *Submission) error
	MarkPointsAwarded(ctx context.Context, id, submissionID string) error
	FindPendingAwards(ctx context.Context, limit int64) ([]*Assignment, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewAssignmentMongoMapper db: %s, collection: %s", config.Mongo.DB, CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, assignment *Assignment) error {
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
		assignment.CreateTime = time.Now()
		assignment.UpdateTime = assignment.CreateTime
	}
	if assignment.Questions == nil {
		assignment.Questions = []Question{}
	}
	if assignment.Submissions == nil {
		assignment.Submissions = []Submission{}
	}
	_, err := m.conn.InsertOneNoCache(ctx, assignment)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var a Assignment
	err = m.conn.FindOneNoCache(ctx, &a, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &a, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByCourseID(ctx context.Context, courseID string) ([]*Assignment, error) {
	return m.find(ctx, bson.M{consts.Course: courseID})
}

func (m *MongoMapper) FindByCourseIDs(ctx context.Context, courseIDs []string) ([]*Assignment, error) {
	if len(courseIDs) == 0 {
		return []*Assignment{}, nil
	}
	return m.find(ctx, bson.M{consts.Course: bson.M{"$in": courseIDs}})
}

func (m *MongoMapper) FindByInstructor(ctx context.Context, instructorID string) ([]*Assignment, error) {
	return m.find(ctx, bson.M{consts.Instructor: instructorID})
}

func (m *MongoMapper) FindByStudent(ctx context.Context, studentID string) ([]*Assignment, error) {
	return m.find(ctx, bson.M{consts.SubmissionStudent: studentID})
}

func (m *MongoMapper) find(ctx context.Context, filter bson.M) ([]*Assignment, error) {
	var assignments []*Assignment
	err := m.conn.Find(ctx, &assignments, filter, &options.FindOptions{
		Sort: bson.M{"due_date": 1},
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (m *MongoMapper) PushSubmission(ctx context.Context, id string, sub *Submission) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:                oid,
		consts.SubmissionStudent: bson.M{consts.NotEqual: sub.Student},
	}, bson.M{
		"$push": bson.M{consts.Submissions: sub},
		"$set":  bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := m.conn.CountDocuments(ctx, bson.M{consts.ID: oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return consts.ErrAssignmentNotFound
	}
	return consts.ErrAlreadySubmitted
}

func (m *MongoMapper) MarkPointsAwarded(ctx context.Context, id, submissionID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	sid, err := primitive.ObjectIDFromHex(submissionID)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:         oid,
		submissionIDField: sid,
	}, bson.M{
		"$set": bson.M{consts.Submissions + ".$.points_awarded": true},
	})
	return err
}

func (m *MongoMapper) FindPendingAwards(ctx context.Context, limit int64) ([]*Assignment, error) {
	var assignments []*Assignment
	err := m.conn.Find(ctx, &assignments, bson.M{
		consts.Submissions: bson.M{"$elemMatch": bson.M{"points_awarded": false}},
	}, &options.FindOptions{
		Limit: &limit,
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
