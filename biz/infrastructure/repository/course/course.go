package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Module struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	VideoURL  string             `bson:"video_url" json:"videoUrl"`
	Duration  int64              `bson:"duration" json:"duration"`
	Completed []string           `bson:"completed" json:"completed"`
}

type ScheduleEntry struct {
	Day      string `bson:"day" json:"day"`
	Time     string `bson:"time" json:"time"`
	Duration int64  `bson:"duration" json:"duration"`
	Room     string `bson:"room" json:"room"`
}

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Instructor  string             `bson:"instructor" json:"instructor"`
	Students    []string           `bson:"students" json:"students"`
	Modules     []Module           `bson:"modules" json:"modules"`
	Assignments []string           `bson:"assignments" json:"assignments"`
	Schedule    []ScheduleEntry    `bson:"schedule" json:"schedule"`
	Category    string             `bson:"category" json:"category"`
	Difficulty  string             `bson:"difficulty" json:"difficulty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

func (c *Course) HasStudent(userID string) bool {
	for _, s := range c.Students {
		if s == userID {
			return true
		}
	}
	return false
}

func (c *Course) Module(id string) *Module {
	for i := range c.Modules {
		if c.Modules[i].ID.Hex() == id {
			return &c.Modules[i]
		}
	}
	return nil
}
