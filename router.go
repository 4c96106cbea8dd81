package main

import (
	"context"
	"net/http"

	"edu-platform/biz/adaptor/controller/api"
	"edu-platform/biz/adaptor/middleware"
	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// register registers routers.
func register(r *server.Hertz) {
	p := provider.Get()
	authn := middleware.Authenticate(p.UserService)

	r.NoRoute(func(_ context.Context, c *app.RequestContext) {
		c.JSON(http.StatusNotFound, &basic.Response{Message: "route not found"})
	})

	root := r.Group("/api", middleware.RateLimit(p.Limiter))
	root.GET("/health", api.Health)
	// outside the timeout group
	root.GET("/relay", authn, api.Relay)

	g := root.Group("", middleware.Timeout(p.Config.Server.RequestTimeout))
	{
		auth := g.Group("/auth")
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.GET("/me", authn, api.Me)
	}
	{
		courses := g.Group("/courses", authn)
		courses.GET("", api.ListCourses)
		courses.GET("/my-courses", api.MyCourses)
		courses.POST("", middleware.Authorize(consts.RoleTeacher), api.CreateCourse)
		courses.POST("/:id/enroll", middleware.Authorize(consts.RoleStudent), api.Enroll)
		courses.POST("/:id/progress", api.UpdateProgress)
		courses.POST("/:id/modules/upload-url", middleware.Authorize(consts.RoleTeacher), api.CreateUploadURL)
	}
	{
		assignments := g.Group("/assignments", authn)
		assignments.GET("/course/:courseId", api.ListCourseAssignments)
		assignments.POST("", middleware.Authorize(consts.RoleTeacher), api.CreateAssignment)
		assignments.POST("/:id/submit", middleware.Authorize(consts.RoleStudent), api.SubmitAssignment)
		assignments.GET("/my-submissions", middleware.Authorize(consts.RoleStudent), api.MySubmissions)
	}
	{
		analytics := g.Group("/analytics", authn)
		analytics.GET("/dashboard", api.Dashboard)
		analytics.GET("/teacher-dashboard", middleware.Authorize(consts.RoleTeacher), api.TeacherDashboard)
		analytics.GET("/teacher-dashboard/export", middleware.Authorize(consts.RoleTeacher), api.ExportTeacherDashboard)
		analytics.GET("/progress/:courseId", api.Progress)
	}
	{
		communication := g.Group("/communication", authn)
		communication.GET("/notifications", api.Notifications)
		communication.PUT("/notifications/:id/read", api.MarkNotificationRead)
		communication.POST("/messages", api.SendMessage)
		communication.GET("/messages", api.ListMessages)
		communication.GET("/chat/:classId", api.ChatHistory)
	}
	{
		ai := g.Group("/ai", authn)
		ai.POST("/chat", api.Chat)
		ai.GET("/recommendations", api.Recommendations)
		ai.POST("/generate-quiz", api.GenerateQuiz)
	}
}
