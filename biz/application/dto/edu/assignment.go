package edu

import (
	"time"

	"edu-platform/biz/infrastructure/repository/assignment"
)

type QuestionReq struct {
	Question      string   `json:"question" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple-choice essay code"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        int64    `json:"points" validate:"gte=0"`
}

type CreateAssignmentReq struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description" validate:"required"`
	CourseID    string        `json:"course" validate:"required"`
	DueDate     time.Time     `json:"dueDate" validate:"required"`
	MaxPoints   int64         `json:"maxPoints" validate:"gte=0"`
	Questions   []QuestionReq `json:"questions" validate:"dive"`
}

type SubmitReq struct {
	Answers []string `json:"answers" validate:"required"`
}

type SubmitResp struct {
	Message      string                 `json:"message"`
	Grade        float64                `json:"grade"`
	PointsEarned int64                  `json:"pointsEarned"`
	Submission   *assignment.Submission `json:"submission"`
}

type SubmissionAssignment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Course    string    `json:"course"`
	DueDate   time.Time `json:"dueDate"`
	MaxPoints int64     `json:"maxPoints"`
}

type MySubmission struct {
	Assignment SubmissionAssignment   `json:"assignment"`
	Submission *assignment.Submission `json:"submission"`
}
