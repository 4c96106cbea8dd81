package message

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct note between two accounts, typically a parent and a
// teacher.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender     string             `bson:"sender" json:"sender"`
	Recipient  string             `bson:"recipient" json:"recipient"`
	Subject    string             `bson:"subject" json:"subject"`
	Content    string             `bson:"content" json:"content"`
	Read       bool               `bson:"read" json:"read"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}
