package service

import (
	"bytes"
	"context"
	"math"
	"sort"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/report"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

const progressWeeks = 4

type IAnalyticsService interface {
	Dashboard(ctx context.Context) (*edu.DashboardResp, error)
	TeacherDashboard(ctx context.Context) (*edu.TeacherDashboardResp, error)
	Progress(ctx context.Context, courseID string) (*edu.ProgressViewResp, error)
	ExportTeacherDashboard(ctx context.Context) (*bytes.Buffer, error)
}

type AnalyticsService struct {
	AssignmentMapper assignment.IMongoMapper
	CourseMapper     course.IMongoMapper
	UserMapper       user.IMongoMapper
}

var AnalyticsServiceSet = wire.NewSet(
	wire.Struct(new(AnalyticsService), "*"),
	wire.Bind(new(IAnalyticsService), new(*AnalyticsService)),
)

func (s *AnalyticsService) Dashboard(ctx context.Context) (*edu.DashboardResp, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()

	courseAssignments, err := s.AssignmentMapper.FindByCourseIDs(ctx, u.Courses)
	if err != nil {
		log.CtxError(ctx, "Dashboard load course assignments for %s failed: %v", userID, err)
		return nil, consts.ErrDashboard
	}
	submitted, err := s.AssignmentMapper.FindByStudent(ctx, userID)
	if err != nil {
		log.CtxError(ctx, "Dashboard load submissions for %s failed: %v", userID, err)
		return nil, consts.ErrDashboard
	}
	courses, err := s.CourseMapper.FindByIDs(ctx, u.Courses)
	if err != nil {
		log.CtxError(ctx, "Dashboard load courses for %s failed: %v", userID, err)
		return nil, consts.ErrDashboard
	}

	pending := lo.CountBy(courseAssignments, func(a *assignment.Assignment) bool {
		return a.SubmissionOf(userID) == nil
	})
	grades := lo.FilterMap(submitted, func(a *assignment.Assignment, _ int) (float64, bool) {
		sub := a.SubmissionOf(userID)
		if sub == nil {
			return 0, false
		}
		return sub.Grade, true
	})

	return &edu.DashboardResp{
		Stats: edu.DashboardStats{
			ActiveCourses:      len(u.Courses),
			PendingAssignments: pending,
			PointsEarned:       u.Points,
			AverageGrade:       int64(math.Round(mean(grades))),
		},
		RecentActivity:  recentActivity(u, submitted, courses),
		UpcomingClasses: s.upcomingClasses(ctx, courses),
	}, nil
}

func recentActivity(u *user.User, submitted []*assignment.Assignment, courses []*course.Course) []edu.Activity {
	userID := u.ID.Hex()
	activity := make([]edu.Activity, 0, len(submitted)+len(u.Progress))
	for _, a := range submitted {
		if sub := a.SubmissionOf(userID); sub != nil {
			activity = append(activity, edu.Activity{
				Type:  "assignment_completed",
				Title: a.Title,
				Date:  sub.SubmittedAt,
				Grade: lo.ToPtr(sub.Grade),
			})
		}
	}
	titles := lo.SliceToMap(courses, func(c *course.Course) (string, string) { return c.ID.Hex(), c.Title })
	for _, p := range u.Progress {
		title, ok := titles[p.CourseID]
		if !ok {
			continue
		}
		activity = append(activity, edu.Activity{
			Type:     "course_progress",
			Title:    title,
			Date:     p.LastAccessed,
			Progress: lo.ToPtr(p.Percentage),
		})
	}
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})
	if len(activity) > consts.RecentActivityCount {
		activity = activity[:consts.RecentActivityCount]
	}
	return activity
}

func (s *AnalyticsService) upcomingClasses(ctx context.Context, courses []*course.Course) []edu.UpcomingClass {
	instructors := map[string]string{}
	classes := make([]edu.UpcomingClass, 0)
	for _, c := range courses {
		name, ok := instructors[c.Instructor]
		if !ok {
			if t, err := s.UserMapper.FindOne(ctx, c.Instructor); err == nil {
				name = t.Name
			} else {
				log.CtxInfo(ctx, "upcomingClasses instructor %s not loaded: %v", c.Instructor, err)
			}
			instructors[c.Instructor] = name
		}
		for _, e := range c.Schedule {
			classes = append(classes, edu.UpcomingClass{
				Day:        e.Day,
				Time:       e.Time,
				Title:      c.Title,
				Instructor: name,
				Room:       e.Room,
			})
		}
	}
	return classes
}

func (s *AnalyticsService) TeacherDashboard(ctx context.Context) (*edu.TeacherDashboardResp, error) {
	u, err := requireRole(ctx, consts.RoleTeacher)
	if err != nil {
		return nil, err
	}
	return s.teacherDashboard(ctx, u)
}

func (s *AnalyticsService) teacherDashboard(ctx context.Context, u *user.User) (*edu.TeacherDashboardResp, error) {
	teacherID := u.ID.Hex()
	courses, err := s.CourseMapper.FindByInstructor(ctx, teacherID)
	if err != nil {
		log.CtxError(ctx, "TeacherDashboard load courses for %s failed: %v", teacherID, err)
		return nil, consts.ErrDashboard
	}
	assignments, err := s.AssignmentMapper.FindByInstructor(ctx, teacherID)
	if err != nil {
		log.CtxError(ctx, "TeacherDashboard load assignments for %s failed: %v", teacherID, err)
		return nil, consts.ErrDashboard
	}

	byCourse := lo.GroupBy(assignments, func(a *assignment.Assignment) string { return a.CourseID })
	resp := &edu.TeacherDashboardResp{
		Stats: edu.TeacherStats{
			TotalCourses:     len(courses),
			TotalStudents:    lo.SumBy(courses, func(c *course.Course) int { return len(c.Students) }),
			TotalAssignments: len(assignments),
			TotalSubmissions: lo.SumBy(assignments, func(a *assignment.Assignment) int { return len(a.Submissions) }),
		},
		CoursePerformance: make([]edu.CoursePerformance, 0, len(courses)),
	}
	for _, c := range courses {
		owned := byCourse[c.ID.Hex()]
		grades := lo.FlatMap(owned, func(a *assignment.Assignment, _ int) []float64 {
			return lo.Map(a.Submissions, func(sub assignment.Submission, _ int) float64 { return sub.Grade })
		})
		resp.CoursePerformance = append(resp.CoursePerformance, edu.CoursePerformance{
			CourseID:     c.ID.Hex(),
			Title:        c.Title,
			StudentCount: len(c.Students),
			Assignments:  len(owned),
			Submissions:  len(grades),
			AverageGrade: math.Round(mean(grades)*100) / 100,
		})
	}
	return resp, nil
}

// Progress reports the caller's completion for courseID. weeklyProgress ramps
// linearly to the current percentage.
func (s *AnalyticsService) Progress(ctx context.Context, courseID string) (*edu.ProgressViewResp, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	resp := &edu.ProgressViewResp{CourseID: courseID}
	if p := u.ProgressFor(courseID); p != nil {
		resp.Percentage = p.Percentage
		lastAccessed := p.LastAccessed
		resp.LastAccessed = &lastAccessed
	}
	resp.WeeklyProgress = make([]edu.WeeklyProgress, 0, progressWeeks)
	for w := 1; w <= progressWeeks; w++ {
		resp.WeeklyProgress = append(resp.WeeklyProgress, edu.WeeklyProgress{
			Week:     w,
			Progress: resp.Percentage * int64(w) / progressWeeks,
		})
	}
	return resp, nil
}

func (s *AnalyticsService) ExportTeacherDashboard(ctx context.Context) (*bytes.Buffer, error) {
	u, err := requireRole(ctx, consts.RoleTeacher)
	if err != nil {
		return nil, err
	}
	d, err := s.teacherDashboard(ctx, u)
	if err != nil {
		return nil, err
	}
	buf, err := report.WriteTeacherReport(&report.TeacherReport{
		Teacher:          u.Name,
		GeneratedAt:      time.Now(),
		TotalCourses:     d.Stats.TotalCourses,
		TotalStudents:    d.Stats.TotalStudents,
		TotalAssignments: d.Stats.TotalAssignments,
		TotalSubmissions: d.Stats.TotalSubmissions,
		Courses: lo.Map(d.CoursePerformance, func(p edu.CoursePerformance, _ int) report.CourseRow {
			return report.CourseRow{
				CourseID:     p.CourseID,
				Title:        p.Title,
				Students:     p.StudentCount,
				Assignments:  p.Assignments,
				Submissions:  p.Submissions,
				AverageGrade: p.AverageGrade,
			}
		}),
	})
	if err != nil {
		log.CtxError(ctx, "ExportTeacherDashboard for %s failed: %v", u.ID.Hex(), err)
		return nil, consts.ErrExport
	}
	return buf, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return lo.Sum(xs) / float64(len(xs))
}
