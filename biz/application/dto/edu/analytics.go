package edu

import "time"

type DashboardStats struct {
	ActiveCourses      int   `json:"activeCourses"`
	PendingAssignments int   `json:"pendingAssignments"`
	PointsEarned       int64 `json:"pointsEarned"`
	AverageGrade       int64 `json:"averageGrade"`
}

type Activity struct {
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Grade    *float64  `json:"grade,omitempty"`
	Progress *int64    `json:"progress,omitempty"`
}

type UpcomingClass struct {
	Day        string `json:"day"`
	Time       string `json:"time"`
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
}

type DashboardResp struct {
	Stats           DashboardStats  `json:"stats"`
	RecentActivity  []Activity      `json:"recentActivity"`
	UpcomingClasses []UpcomingClass `json:"upcomingClasses"`
}

type TeacherStats struct {
	TotalCourses     int `json:"totalCourses"`
	TotalStudents    int `json:"totalStudents"`
	TotalAssignments int `json:"totalAssignments"`
	TotalSubmissions int `json:"totalSubmissions"`
}

type CoursePerformance struct {
	CourseID     string  `json:"courseId"`
	Title        string  `json:"title"`
	StudentCount int     `json:"studentCount"`
	Assignments  int     `json:"assignments"`
	Submissions  int     `json:"submissions"`
	AverageGrade float64 `json:"averageGrade"`
}

type TeacherDashboardResp struct {
	Stats             TeacherStats        `json:"stats"`
	CoursePerformance []CoursePerformance `json:"coursePerformance"`
}

type WeeklyProgress struct {
	Week     int   `json:"week"`
	Progress int64 `json:"progress"`
}

type ProgressViewResp struct {
	CourseID       string           `json:"courseId"`
	Percentage     int64            `json:"percentage"`
	LastAccessed   *time.Time       `json:"lastAccessed"`
	WeeklyProgress []WeeklyProgress `json:"weeklyProgress"`
}
