package quiz

import (
	"context"
	"fmt"

	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/question_bank"
	"edu-platform/biz/infrastructure/util/log"
)

type Question struct {
	Question      string
	Type          consts.QuestionType
	Options       []string
	CorrectAnswer string
	Explanation   string
	Points        int64
}

// Count applies the default and the upper bound to a requested size.
func Count(requested int) int {
	switch {
	case requested <= 0:
		return consts.DefaultQuizQuestions
	case requested > consts.MaxQuizQuestions:
		return consts.MaxQuizQuestions
	default:
		return requested
	}
}

// Generate draws up to count questions from bank and fills the rest from a
// template. Bank failures fall back to the template.
func Generate(ctx context.Context, bank question_bank.IMySQLMapper, topic, difficulty string, count int) []*Question {
	questions := make([]*Question, 0, count)
	if bank != nil {
		rows, err := bank.FindByTopic(ctx, topic, difficulty, count)
		if err != nil {
			log.CtxError(ctx, "quiz: question bank lookup for %q failed: %v", topic, err)
		}
		for _, r := range rows {
			if len(questions) == count {
				break
			}
			questions = append(questions, &Question{
				Question:      r.Question,
				Type:          r.Type,
				Options:       r.Options,
				CorrectAnswer: r.CorrectAnswer,
				Explanation:   fmt.Sprintf("From the %s question bank.", r.Topic),
				Points:        consts.QuizQuestionPoints,
			})
		}
	}
	for i := len(questions); i < count; i++ {
		questions = append(questions, templateQuestion(topic, difficulty, i+1))
	}
	return questions
}

func templateQuestion(topic, difficulty string, n int) *Question {
	correct := "Option A - Correct answer"
	if difficulty == "" {
		difficulty = "mixed"
	}
	return &Question{
		Question: fmt.Sprintf("Sample %s question %d (%s level)", topic, n, difficulty),
		Type:     consts.QuestionMultipleChoice,
		Options: []string{
			correct,
			"Option B - Incorrect",
			"Option C - Incorrect",
			"Option D - Incorrect",
		},
		CorrectAnswer: correct,
		Explanation:   "This is the correct answer because it matches the core definition.",
		Points:        consts.QuizQuestionPoints,
	}
}
