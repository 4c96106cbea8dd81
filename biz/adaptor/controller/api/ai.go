package api

import (
	"context"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// Chat .
// @router /api/ai/chat [POST]
func Chat(ctx context.Context, c *app.RequestContext) {
	var req edu.ChatReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.AIService.Chat(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Recommendations .
// @router /api/ai/recommendations [GET]
func Recommendations(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.AIService.Recommendations(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// GenerateQuiz .
// @router /api/ai/generate-quiz [POST]
func GenerateQuiz(ctx context.Context, c *app.RequestContext) {
	var req edu.GenerateQuizReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.AIService.GenerateQuiz(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
