package api

import (
	"context"
	"net/http"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// Register .
// @router /api/auth/register [POST]
func Register(ctx context.Context, c *app.RequestContext) {
	var req edu.RegisterReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.UserService.Register(ctx, &req)
	adaptor.PostProcessStatus(ctx, c, http.StatusCreated, &req, resp, err)
}

// Login .
// @router /api/auth/login [POST]
func Login(ctx context.Context, c *app.RequestContext) {
	var req edu.LoginReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.UserService.Login(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Me .
// @router /api/auth/me [GET]
func Me(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.UserService.GetMe(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
