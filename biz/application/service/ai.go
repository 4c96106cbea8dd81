package service

import (
	"context"
	"strings"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/cache"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/question_bank"
	"edu-platform/biz/infrastructure/util"
	"edu-platform/biz/infrastructure/util/log"
	"edu-platform/biz/infrastructure/util/quiz"

	"github.com/bytedance/gopkg/lang/fastrand"
	"github.com/google/wire"
	"github.com/samber/lo"
)

const maxRecommendations = 3

var (
	cannedResponses = []string{
		"I understand you're working on this topic. Let me help you break it down step by step.",
		"That's a great question! Here are the key concepts you should focus on:",
		"Based on your learning progress, I recommend reviewing these areas:",
		"Let me provide you with a detailed explanation and some practice problems.",
		"I can see you're making good progress! Here's how to tackle this challenge:",
	}
	subjectTips = map[string]string{
		"mathematics": "\n\nMathematics Tips:\n• Break complex problems into smaller steps\n• Practice regularly with varied examples\n• Use visual aids when possible",
		"science":     "\n\nScience Study Guide:\n• Connect theory with real-world examples\n• Use the scientific method approach\n• Review formulas and their applications",
	}
	chatSuggestions = []string{
		"Would you like practice problems?",
		"Need help with specific concepts?",
		"Want study schedule recommendations?",
	}
	defaultRecommendations = []edu.Recommendation{
		{Type: "study_session", Title: "Review Fundamentals", Description: "Revisit the core concepts from your most recent lessons", Priority: "high", EstimatedTime: "30 minutes"},
		{Type: "practice", Title: "Practice Problem Set", Description: "Complete 5 practice problems to strengthen understanding", Priority: "medium", EstimatedTime: "45 minutes"},
		{Type: "review", Title: "Formula Review", Description: "Review key formulas before your next assessment", Priority: "medium", EstimatedTime: "20 minutes"},
	}
)

type IAIService interface {
	Chat(ctx context.Context, req *edu.ChatReq) (*edu.ChatResp, error)
	Recommendations(ctx context.Context) ([]edu.Recommendation, error)
	GenerateQuiz(ctx context.Context, req *edu.GenerateQuizReq) (*edu.GenerateQuizResp, error)
}

type AIService struct {
	Config       *config.Config
	CourseMapper course.IMongoMapper
	QuestionBank question_bank.IMySQLMapper
	ChatCache    cache.IChatCache
}

var AIServiceSet = wire.NewSet(
	wire.Struct(new(AIService), "*"),
	wire.Bind(new(IAIService), new(*AIService)),
)

// Chat asks the upstream model when one is configured and falls back to a
// canned tutoring reply.
func (s *AIService) Chat(ctx context.Context, req *edu.ChatReq) (*edu.ChatResp, error) {
	subject := strings.ToLower(strings.TrimSpace(req.Context))
	if answer, ok := s.upstream(ctx, subject, req.Message); ok {
		return &edu.ChatResp{Response: answer, Suggestions: chatSuggestions}, nil
	}
	answer := cannedResponses[fastrand.Intn(len(cannedResponses))] + subjectTips[subject]
	return &edu.ChatResp{Response: answer, Suggestions: chatSuggestions}, nil
}

func (s *AIService) upstream(ctx context.Context, subject, message string) (string, bool) {
	if s.Config == nil || s.Config.Api.ChatURL == "" {
		return "", false
	}
	if s.ChatCache != nil {
		if answer, ok := s.ChatCache.Get(ctx, subject, message); ok {
			return answer, true
		}
	}
	answer, err := util.GetHttpClient().Chat(ctx, s.Config.Api.ChatURL, message, subject)
	if err != nil {
		log.CtxError(ctx, "Chat upstream failed, using canned reply: %v", err)
		return "", false
	}
	if s.ChatCache != nil {
		if err := s.ChatCache.Set(ctx, subject, message, answer); err != nil {
			log.CtxInfo(ctx, "Chat cache set failed: %v", err)
		}
	}
	return answer, true
}

// Recommendations points at unfinished enrolled courses first, then general
// study suggestions.
func (s *AIService) Recommendations(ctx context.Context) ([]edu.Recommendation, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]edu.Recommendation, 0, maxRecommendations)
	courses, err := s.CourseMapper.FindByIDs(ctx, u.Courses)
	if err != nil {
		log.CtxError(ctx, "Recommendations load courses for %s failed: %v", u.ID.Hex(), err)
	}
	for _, c := range courses {
		if len(recs) == maxRecommendations {
			break
		}
		var pct int64
		if p := u.ProgressFor(c.ID.Hex()); p != nil {
			pct = p.Percentage
		}
		if pct >= 100 {
			continue
		}
		rec := edu.Recommendation{
			Type:          "continue_course",
			Title:         "Continue " + c.Title,
			Description:   "Pick up where you left off in " + c.Title,
			Priority:      "medium",
			EstimatedTime: "30 minutes",
			CourseID:      c.ID.Hex(),
		}
		if pct == 0 {
			rec.Priority = "high"
			rec.Description = "You have not started " + c.Title + " yet"
		}
		recs = append(recs, rec)
	}
	for _, r := range defaultRecommendations {
		if len(recs) == maxRecommendations {
			break
		}
		recs = append(recs, r)
	}
	return recs, nil
}

func (s *AIService) GenerateQuiz(ctx context.Context, req *edu.GenerateQuizReq) (*edu.GenerateQuizResp, error) {
	questions := quiz.Generate(ctx, s.QuestionBank, req.Topic, req.Difficulty, quiz.Count(req.QuestionCount))
	resp := &edu.GenerateQuizResp{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Questions: lo.Map(questions, func(q *quiz.Question, _ int) *edu.QuizQuestion {
			return &edu.QuizQuestion{
				Question:      q.Question,
				Type:          string(q.Type),
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Points:        q.Points,
			}
		}),
	}
	resp.TotalPoints = lo.SumBy(resp.Questions, func(q *edu.QuizQuestion) int64 { return q.Points })
	return resp, nil
}
