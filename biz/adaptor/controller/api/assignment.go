package api

import (
	"context"
	"net/http"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// ListCourseAssignments .
// @router /api/assignments/course/:courseId [GET]
func ListCourseAssignments(ctx context.Context, c *app.RequestContext) {
	courseID := c.Param("courseId")
	p := provider.Get()
	resp, err := p.AssignmentService.ListByCourse(ctx, courseID)
	adaptor.PostProcess(ctx, c, courseID, resp, err)
}

// CreateAssignment .
// @router /api/assignments [POST]
func CreateAssignment(ctx context.Context, c *app.RequestContext) {
	var req edu.CreateAssignmentReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.CreateAssignment(ctx, &req)
	adaptor.PostProcessStatus(ctx, c, http.StatusCreated, &req, resp, err)
}

// SubmitAssignment .
// @router /api/assignments/:id/submit [POST]
func SubmitAssignment(ctx context.Context, c *app.RequestContext) {
	var req edu.SubmitReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.Submit(ctx, c.Param("id"), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// MySubmissions .
// @router /api/assignments/my-submissions [GET]
func MySubmissions(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.AssignmentService.MySubmissions(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}
