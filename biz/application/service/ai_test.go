package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/cache"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/question_bank"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

func TestChatFallsBackToCannedReply(t *testing.T) {
	s := &AIService{Config: new(config.Config)}
	resp, err := s.Chat(context.Background(), &edu.ChatReq{Message: "help", Context: "Mathematics"})
	require.NoError(t, err)
	assert.True(t, lo.ContainsBy(cannedResponses, func(c string) bool { return strings.HasPrefix(resp.Response, c) }))
	assert.Contains(t, resp.Response, "Mathematics Tips")
	assert.Equal(t, chatSuggestions, resp.Suggestions)

	resp, err = s.Chat(context.Background(), &edu.ChatReq{Message: "help", Context: "history"})
	require.NoError(t, err)
	assert.Contains(t, cannedResponses, resp.Response)
}

func TestChatUsesUpstreamAndCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "upstream says hi"})
	}))
	defer srv.Close()

	c := new(config.Config)
	c.Api.ChatURL = srv.URL
	s := &AIService{
		Config:    c,
		ChatCache: cache.NewChatCacheWithRedis(redis.MustNewRedis(redis.RedisConf{Host: miniredis.RunT(t).Addr(), Type: redis.NodeType})),
	}
	for i := 0; i < 2; i++ {
		resp, err := s.Chat(context.Background(), &edu.ChatReq{Message: "what is x", Context: "science"})
		require.NoError(t, err)
		assert.Equal(t, "upstream says hi", resp.Response)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestChatUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := new(config.Config)
	c.Api.ChatURL = srv.URL
	s := &AIService{Config: c}
	resp, err := s.Chat(context.Background(), &edu.ChatReq{Message: "help"})
	require.NoError(t, err)
	assert.Contains(t, cannedResponses, resp.Response)
}

func TestRecommendations(t *testing.T) {
	courses := &fakeCourses{}
	started := &course.Course{Title: "Algebra"}
	done := &course.Course{Title: "Physics"}
	fresh := &course.Course{Title: "Biology"}
	for _, c := range []*course.Course{started, done, fresh} {
		require.NoError(t, courses.Insert(context.Background(), c))
	}
	u := newFakeUsers().add("sam", consts.RoleStudent)
	u.Courses = []string{started.ID.Hex(), done.ID.Hex(), fresh.ID.Hex()}
	u.Progress = []user.Progress{
		{CourseID: started.ID.Hex(), Percentage: 40},
		{CourseID: done.ID.Hex(), Percentage: 100},
	}

	s := &AIService{CourseMapper: courses}
	recs, err := s.Recommendations(as(u))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Continue Algebra", recs[0].Title)
	assert.Equal(t, "medium", recs[0].Priority)
	assert.Equal(t, "Continue Biology", recs[1].Title)
	assert.Equal(t, "high", recs[1].Priority)
	assert.Equal(t, defaultRecommendations[0], recs[2])

	recs, err = s.Recommendations(as(newFakeUsers().add("new", consts.RoleStudent)))
	require.NoError(t, err)
	assert.Equal(t, defaultRecommendations, recs)
}

func TestGenerateQuiz(t *testing.T) {
	s := &AIService{QuestionBank: question_bank.NoopMapper{}}
	resp, err := s.GenerateQuiz(context.Background(), &edu.GenerateQuizReq{Topic: "fractions", Difficulty: "easy"})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, consts.DefaultQuizQuestions)
	assert.Equal(t, int64(consts.DefaultQuizQuestions)*consts.QuizQuestionPoints, resp.TotalPoints)
	assert.Contains(t, resp.Questions[0].Question, "fractions")

	resp, err = s.GenerateQuiz(context.Background(), &edu.GenerateQuizReq{Topic: "x", QuestionCount: 500})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, consts.MaxQuizQuestions)
}
