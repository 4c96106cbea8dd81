package event

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

const (
	Source  = "edu-platform"
	Version = "1.0"

	TopicSubmissionGraded = "submission.graded"
)

type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type SubmissionGraded struct {
	AssignmentID    string  `json:"assignmentId"`
	AssignmentTitle string  `json:"assignmentTitle"`
	CourseID        string  `json:"courseId"`
	SubmissionID    string  `json:"submissionId"`
	StudentID       string  `json:"studentId"`
	Grade           float64 `json:"grade"`
	PointsAwarded   int64   `json:"pointsAwarded"`
}

func NewEvent(eventType string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now(),
		Data:      raw,
	}, nil
}
