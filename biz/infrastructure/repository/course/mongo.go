package course

import (
	"context"
	"errors"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "course"

	moduleIDField = consts.Modules + "._id"
)

type IMongoMapper interface {
	Insert(ctx context.Context, course *Course) error
	FindOne(ctx context.Context, id string) (*Course, error)
	FindActive(ctx context.Context, page, pageSize int64) ([]*Course, int64, error)
	FindByInstructor(ctx context.Context, instructorID string) ([]*Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Course, error)
	// AddStudent reports false when the student was already enrolled.
	AddStudent(ctx context.Context, id, studentID string) (bool, error)
	AddAssignment(ctx context.Context, id, assignmentID string) error
	SetModuleCompleted(ctx context.Context, id, moduleID, userID string, completed bool) error
	SetModuleVideo(ctx context.Context, id, moduleID, videoURL string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewCourseMongoMapper db: %s, collection: %s", config.Mongo.DB, CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, course *Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
		course.CreateTime = time.Now()
		course.UpdateTime = course.CreateTime
	}
	if course.Students == nil {
		course.Students = []string{}
	}
	if course.Assignments == nil {
		course.Assignments = []string{}
	}
	if course.Modules == nil {
		course.Modules = []Module{}
	}
	for i := range course.Modules {
		if course.Modules[i].ID.IsZero() {
			course.Modules[i].ID = primitive.NewObjectID()
		}
		if course.Modules[i].Completed == nil {
			course.Modules[i].Completed = []string{}
		}
	}
	_, err := m.conn.InsertOneNoCache(ctx, course)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Course
	err = m.conn.FindOneNoCache(ctx, &c, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindActive(ctx context.Context, page, pageSize int64) ([]*Course, int64, error) {
	var courses []*Course
	filter := bson.M{consts.IsActive: true}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	err = m.conn.Find(ctx, &courses, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (m *MongoMapper) FindByInstructor(ctx context.Context, instructorID string) ([]*Course, error) {
	var courses []*Course
	err := m.conn.Find(ctx, &courses, bson.M{
		consts.Instructor: instructorID,
	}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// FindByIDs skips ids that are not valid object ids.
func (m *MongoMapper) FindByIDs(ctx context.Context, ids []string) ([]*Course, error) {
	oids := lo.FilterMap(ids, func(id string, _ int) (primitive.ObjectID, bool) {
		oid, err := primitive.ObjectIDFromHex(id)
		return oid, err == nil
	})
	if len(oids) == 0 {
		return []*Course{}, nil
	}
	var courses []*Course
	err := m.conn.Find(ctx, &courses, bson.M{
		consts.ID: bson.M{"$in": oids},
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (m *MongoMapper) AddStudent(ctx context.Context, id, studentID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{consts.Students: studentID},
	})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, consts.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return false, nil
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$set": bson.M{consts.UpdateTime: time.Now()},
	})
	return true, err
}

func (m *MongoMapper) AddAssignment(ctx context.Context, id, assignmentID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{consts.Assignments: assignmentID},
		"$set":      bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MongoMapper) SetModuleCompleted(ctx context.Context, id, moduleID, userID string, completed bool) error {
	filter, err := moduleFilter(id, moduleID)
	if err != nil {
		return err
	}
	op := "$pull"
	if completed {
		op = "$addToSet"
	}
	res, err := m.conn.UpdateOneNoCache(ctx, filter, bson.M{
		op: bson.M{consts.Modules + ".$.completed": userID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MongoMapper) SetModuleVideo(ctx context.Context, id, moduleID, videoURL string) error {
	filter, err := moduleFilter(id, moduleID)
	if err != nil {
		return err
	}
	res, err := m.conn.UpdateOneNoCache(ctx, filter, bson.M{
		"$set": bson.M{
			consts.Modules + ".$.video_url": videoURL,
			consts.UpdateTime:               time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func moduleFilter(id, moduleID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	moid, err := primitive.ObjectIDFromHex(moduleID)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return bson.M{
		consts.ID:     oid,
		moduleIDField: moid,
	}, nil
}
