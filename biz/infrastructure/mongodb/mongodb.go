package mongodb

import (
	"context"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/message"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util/log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 2 * time.Second

type IDatabase interface {
	Ping(ctx context.Context) error
}

type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewDatabase(config *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Mongo.URL))
	if err != nil {
		return nil, err
	}
	d := &Database{client: client, db: client.Database(config.Mongo.DB)}
	if err := d.EnsureIndexes(ctx); err != nil {
		log.Error("mongodb: ensure indexes failed: %v", err)
	}
	return d, nil
}

func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return d.client.Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the mappers rely on. The unique email
// index backs duplicate registration detection.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		user.CollectionName: {
			{Keys: bson.D{{Key: consts.Email, Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		course.CollectionName: {
			{Keys: bson.D{{Key: consts.Instructor, Value: 1}}},
			{Keys: bson.D{{Key: consts.IsActive, Value: 1}, {Key: consts.CreateTime, Value: -1}}},
		},
		assignment.CollectionName: {
			{Keys: bson.D{{Key: consts.Course, Value: 1}}},
			{Keys: bson.D{{Key: consts.Instructor, Value: 1}}},
			{Keys: bson.D{{Key: consts.SubmissionStudent, Value: 1}}},
		},
		message.CollectionName: {
			{Keys: bson.D{{Key: consts.Sender, Value: 1}, {Key: consts.CreateTime, Value: -1}}},
			{Keys: bson.D{{Key: consts.Recipient, Value: 1}, {Key: consts.CreateTime, Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
