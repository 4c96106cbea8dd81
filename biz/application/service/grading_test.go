package service

import (
	"testing"

	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/assignment"

	"github.com/stretchr/testify/assert"
)

func mcq(answer string, points int64) assignment.Question {
	return assignment.Question{Type: consts.QuestionMultipleChoice, CorrectAnswer: answer, Points: points}
}

func TestGradeSubmission(t *testing.T) {
	twoMCQ := []assignment.Question{mcq("A", 10), mcq("B", 10)}

	cases := []struct {
		name      string
		questions []assignment.Question
		answers   []string
		want      float64
	}{
		{"all correct", twoMCQ, []string{"A", "B"}, 100},
		{"half correct", twoMCQ, []string{"A", "C"}, 50},
		{"missing answers are wrong", twoMCQ, []string{"A"}, 50},
		{"extra answers ignored", twoMCQ, []string{"A", "B", "C"}, 100},
		{"no questions", nil, []string{"A"}, 0},
		{"zero total points", []assignment.Question{mcq("A", 0)}, []string{"A"}, 0},
		{"essay counts toward total only", []assignment.Question{
			mcq("A", 10),
			{Type: consts.QuestionEssay, Points: 30},
		}, []string{"A", "an essay"}, 25},
		{"weighted", []assignment.Question{mcq("A", 30), mcq("B", 10)}, []string{"X", "B"}, 25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := GradeSubmission(c.questions, c.answers)
			assert.InDelta(t, c.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestPointsForGrade(t *testing.T) {
	assert.Equal(t, int64(66), PointsForGrade(200.0/3))
	assert.Equal(t, int64(100), PointsForGrade(100))
	assert.Equal(t, int64(0), PointsForGrade(0))
}
