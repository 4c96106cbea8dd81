package service

import (
	"math"

	"edu-platform/biz/infrastructure/repository/assignment"
)

// GradeSubmission scores answers against questions on a 0-100 scale. Only
// multiple-choice questions earn points automatically; every question counts
// toward the total. A missing answer is wrong.
func GradeSubmission(questions []assignment.Question, answers []string) float64 {
	var total, earned int64
	for i, q := range questions {
		if q.Points <= 0 {
			continue
		}
		total += q.Points
		if q.Type.AutoGradable() && i < len(answers) && answers[i] == q.CorrectAnswer {
			earned += q.Points
		}
	}
	if total == 0 {
		return 0
	}
	return float64(earned) / float64(total) * 100
}

// PointsForGrade is the point balance increment for a graded submission.
func PointsForGrade(grade float64) int64 {
	return int64(math.Floor(grade))
}
