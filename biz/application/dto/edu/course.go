package edu

import (
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/user"
)

type ModuleReq struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
	Duration int64  `json:"duration" validate:"gte=0"`
}

type ScheduleReq struct {
	Day      string `json:"day" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Duration int64  `json:"duration" validate:"gte=0"`
	Room     string `json:"room"`
}

type CreateCourseReq struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description" validate:"required"`
	Category    string        `json:"category"`
	Difficulty  string        `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Modules     []ModuleReq   `json:"modules" validate:"dive"`
	Schedule    []ScheduleReq `json:"schedule" validate:"dive"`
}

type ListCoursesResp struct {
	Courses []*course.Course `json:"courses"`
	Total   int64            `json:"total"`
	Page    int64            `json:"page"`
	Limit   int64            `json:"limit"`
}

type EnrollResp struct {
	Message  string `json:"message"`
	Enrolled bool   `json:"enrolled"`
}

type ProgressReq struct {
	ModuleID  string `json:"moduleId"`
	Completed bool   `json:"completed"`
}

type ProgressResp struct {
	Message  string         `json:"message"`
	Progress *user.Progress `json:"progress"`
}

type UploadURLReq struct {
	ModuleID    string `json:"moduleId" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType"`
}
