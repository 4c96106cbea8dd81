package user

import (
	"time"

	"edu-platform/biz/infrastructure/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is lowered in tests.
var BcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type Achievement struct {
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	EarnedAt    time.Time `bson:"earned_at" json:"earnedAt"`
}

type Progress struct {
	CourseID     string    `bson:"course_id" json:"courseId"`
	Percentage   int64     `bson:"percentage" json:"percentage"`
	LastAccessed time.Time `bson:"last_accessed" json:"lastAccessed"`
}

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"-"`
	Role               consts.Role        `bson:"role" json:"role"`
	Avatar             string             `bson:"avatar" json:"avatar"`
	Courses            []string           `bson:"courses" json:"courses"`
	Achievements       []Achievement      `bson:"achievements" json:"achievements"`
	Points             int64              `bson:"points" json:"points"`
	Progress           []Progress         `bson:"progress" json:"progress"`
	AwardedSubmissions []string           `bson:"awarded_submissions" json:"-"`
	ReadNotifications  []string           `bson:"read_notifications" json:"-"`
	CreateTime         time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime         time.Time          `bson:"update_time" json:"updateTime"`
}

// SetPassword replaces the stored hash. The plaintext is never kept.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (u *User) ProgressFor(courseID string) *Progress {
	for i := range u.Progress {
		if u.Progress[i].CourseID == courseID {
			return &u.Progress[i]
		}
	}
	return nil
}

func (u *User) HasAchievement(title string) bool {
	for _, a := range u.Achievements {
		if a.Title == title {
			return true
		}
	}
	return false
}
