package api

import (
	"context"
	"net/http"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/util/page"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// ListCourses .
// @router /api/courses [GET]
func ListCourses(ctx context.Context, c *app.RequestContext) {
	opts := paginationFromQuery(c)
	pageNum, limit := page.ParsePageOpt(opts)

	p := provider.Get()
	resp, err := p.CourseService.ListCourses(ctx, pageNum, limit)
	adaptor.PostProcess(ctx, c, opts, resp, err)
}

// MyCourses .
// @router /api/courses/my-courses [GET]
func MyCourses(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.CourseService.MyCourses(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// CreateCourse .
// @router /api/courses [POST]
func CreateCourse(ctx context.Context, c *app.RequestContext) {
	var req edu.CreateCourseReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.CourseService.CreateCourse(ctx, &req)
	adaptor.PostProcessStatus(ctx, c, http.StatusCreated, &req, resp, err)
}

// Enroll .
// @router /api/courses/:id/enroll [POST]
func Enroll(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.CourseService.Enroll(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

// UpdateProgress .
// @router /api/courses/:id/progress [POST]
func UpdateProgress(ctx context.Context, c *app.RequestContext) {
	var req edu.ProgressReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.CourseService.UpdateProgress(ctx, c.Param("id"), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateUploadURL .
// @router /api/courses/:id/modules/upload-url [POST]
func CreateUploadURL(ctx context.Context, c *app.RequestContext) {
	var req edu.UploadURLReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.CourseService.CreateUploadURL(ctx, c.Param("id"), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func paginationFromQuery(c *app.RequestContext) *basic.PaginationOptions {
	opts := new(basic.PaginationOptions)
	if v := c.Query("page"); v != "" {
		opts.Page = lo.ToPtr(cast.ToInt64(v))
	}
	if v := c.Query("limit"); v != "" {
		opts.Limit = lo.ToPtr(cast.ToInt64(v))
	}
	return opts
}
