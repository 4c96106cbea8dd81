package message

import (
	"context"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "message"

type IMongoMapper interface {
	Insert(ctx context.Context, msg *Message) error
	// FindByParticipant lists messages sent or received by userID, newest first.
	FindByParticipant(ctx context.Context, userID string, limit int64) ([]*Message, error)
	// MarkRead flags a message read. Only its recipient can do that.
	MarkRead(ctx context.Context, id, recipientID string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewMessageMongoMapper db: %s, collection: %s", config.Mongo.DB, CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return err
}

func (m *MongoMapper) FindByParticipant(ctx context.Context, userID string, limit int64) ([]*Message, error) {
	var msgs []*Message
	err := m.conn.Find(ctx, &msgs, bson.M{
		"$or": bson.A{
			bson.M{consts.Sender: userID},
			bson.M{consts.Recipient: userID},
		},
	}, &options.FindOptions{
		Sort:  bson.M{consts.CreateTime: -1},
		Limit: &limit,
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *MongoMapper) MarkRead(ctx context.Context, id, recipientID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{
		consts.ID:        oid,
		consts.Recipient: recipientID,
	}, bson.M{
		"$set": bson.M{consts.Read: true},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
