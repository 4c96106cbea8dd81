package user

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
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "user"

	progressCourseField   = consts.Progress + ".course_id"
	achievementTitleField = consts.Achievements + ".title"
)

type IMongoMapper interface {
	Insert(ctx context.Context, user *User) error
	FindOne(ctx context.Context, id string) (*User, error)
	FindOneByEmail(ctx context.Context, email string) (*User, error)
	AddCourse(ctx context.Context, id, courseID string) error
	// AwardPoints adds points once per submission id. It reports whether the
	// balance changed; a repeated call for the same submission is a no-op.
	AwardPoints(ctx context.Context, id, submissionID string, points int64) (bool, error)
	UpsertProgress(ctx context.Context, id, courseID string, percentage int64, at time.Time) error
	AddAchievement(ctx context.Context, id string, achievement Achievement) error
	MarkNotificationRead(ctx context.Context, id, notificationID string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper db: %s, collection: %s", config.Mongo.DB, CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, user *User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
		user.CreateTime = time.Now()
		user.UpdateTime = user.CreateTime
	}
	// array fields must exist for $push and $addToSet
	if user.Courses == nil {
		user.Courses = []string{}
	}
	if user.Achievements == nil {
		user.Achievements = []Achievement{}
	}
	if user.Progress == nil {
		user.Progress = []Progress{}
	}
	if user.AwardedSubmissions == nil {
		user.AwardedSubmissions = []string{}
	}
	if user.ReadNotifications == nil {
		user.ReadNotifications = []string{}
	}
	_, err := m.conn.InsertOneNoCache(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrDuplicateEmail
	}
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var u User
	err = m.conn.FindOneNoCache(ctx, &u, bson.M{
		consts.ID: oid,
	})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{
		consts.Email: email,
	})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) AddCourse(ctx context.Context, id, courseID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{consts.Courses: courseID},
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

func (m *MongoMapper) AwardPoints(ctx context.Context, id, submissionID string, points int64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:                 oid,
		consts.AwardedSubmissions: bson.M{consts.NotEqual: submissionID},
	}, bson.M{
		"$inc":  bson.M{consts.Points: points},
		"$push": bson.M{consts.AwardedSubmissions: submissionID},
		"$set":  bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// UpsertProgress updates the record for courseID in place, or appends one when
// the user has none yet.
func (m *MongoMapper) UpsertProgress(ctx context.Context, id, courseID string, percentage int64, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	for attempt := 0; attempt < 2; attempt++ {
		res, err := m.conn.UpdateOneNoCache(ctx, bson.M{
			consts.ID:           oid,
			progressCourseField: courseID,
		}, bson.M{
			"$set": bson.M{
				consts.Progress + ".$.percentage":    percentage,
				consts.Progress + ".$.last_accessed": at,
				consts.UpdateTime:                    at,
			},
		})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// the $ne guard keeps two concurrent first writes from appending twice
		res, err = m.conn.UpdateOneNoCache(ctx, bson.M{
			consts.ID:           oid,
			progressCourseField: bson.M{consts.NotEqual: courseID},
		}, bson.M{
			"$push": bson.M{consts.Progress: Progress{
				CourseID:     courseID,
				Percentage:   percentage,
				LastAccessed: at,
			}},
			"$set": bson.M{consts.UpdateTime: at},
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
			return consts.ErrNotFound
		}
	}
	return consts.ErrUpdate
}

func (m *MongoMapper) AddAchievement(ctx context.Context, id string, achievement Achievement) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:             oid,
		achievementTitleField: bson.M{consts.NotEqual: achievement.Title},
	}, bson.M{
		"$push": bson.M{consts.Achievements: achievement},
		"$set":  bson.M{consts.UpdateTime: time.Now()},
	})
	return err
}

func (m *MongoMapper) MarkNotificationRead(ctx context.Context, id, notificationID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{consts.ReadNotifications: notificationID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
