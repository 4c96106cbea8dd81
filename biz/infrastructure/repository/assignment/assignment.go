package assignment

import (
	"time"

	"edu-platform/biz/infrastructure/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Question struct {
	Question      string              `bson:"question" json:"question"`
	Type          consts.QuestionType `bson:"type" json:"type"`
	Options       []string            `bson:"options" json:"options"`
	CorrectAnswer string              `bson:"correct_answer" json:"correctAnswer,omitempty"`
	Points        int64               `bson:"points" json:"points"`
}

type Submission struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Student       string             `bson:"student" json:"student"`
	Answers       []string           `bson:"answers" json:"answers"`
	SubmittedAt   time.Time          `bson:"submitted_at" json:"submittedAt"`
	Grade         float64            `bson:"grade" json:"grade"`
	Feedback      string             `bson:"feedback" json:"feedback"`
	AIGraded      bool               `bson:"ai_graded" json:"aiGraded"`
	PointsAwarded bool               `bson:"points_awarded" json:"-"`
}

type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	CourseID     string             `bson:"course" json:"course"`
	InstructorID string             `bson:"instructor" json:"instructor"`
	DueDate      time.Time          `bson:"due_date" json:"dueDate"`
	MaxPoints    int64              `bson:"max_points" json:"maxPoints"`
	Questions    []Question         `bson:"questions" json:"questions"`
	Submissions  []Submission       `bson:"submissions" json:"submissions"`
	CreateTime   time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime   time.Time          `bson:"update_time" json:"updateTime"`
}

func (a *Assignment) SubmissionOf(studentID string) *Submission {
	for i := range a.Submissions {
		if a.Submissions[i].Student == studentID {
			return &a.Submissions[i]
		}
	}
	return nil
}

// StudentView hides answer keys and other students' submissions.
func (a *Assignment) StudentView(studentID string) *Assignment {
	v := *a
	v.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		q.CorrectAnswer = ""
		v.Questions[i] = q
	}
	v.Submissions = []Submission{}
	if s := a.SubmissionOf(studentID); s != nil {
		v.Submissions = append(v.Submissions, *s)
	}
	return &v
}
