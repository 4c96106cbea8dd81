package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// Dashboard .
// @router /api/analytics/dashboard [GET]
func Dashboard(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.AnalyticsService.Dashboard(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// TeacherDashboard .
// @router /api/analytics/teacher-dashboard [GET]
func TeacherDashboard(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.AnalyticsService.TeacherDashboard(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// ExportTeacherDashboard streams the teacher dashboard as an xlsx workbook.
// @router /api/analytics/teacher-dashboard/export [GET]
func ExportTeacherDashboard(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	buf, err := p.AnalyticsService.ExportTeacherDashboard(ctx)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	filename := fmt.Sprintf("teacher-dashboard-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, consts.ContentTypeXlsx, buf.Bytes())
}

// Progress .
// @router /api/analytics/progress/:courseId [GET]
func Progress(ctx context.Context, c *app.RequestContext) {
	courseID := c.Param("courseId")
	p := provider.Get()
	resp, err := p.AnalyticsService.Progress(ctx, courseID)
	adaptor.PostProcess(ctx, c, courseID, resp, err)
}
