package service

import (
	"context"
	"errors"
	"path"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/storage"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type ICourseService interface {
	ListCourses(ctx context.Context, page, limit int64) (*edu.ListCoursesResp, error)
	MyCourses(ctx context.Context) ([]*course.Course, error)
	CreateCourse(ctx context.Context, req *edu.CreateCourseReq) (*course.Course, error)
	Enroll(ctx context.Context, courseID string) (*edu.EnrollResp, error)
	UpdateProgress(ctx context.Context, courseID string, req *edu.ProgressReq) (*edu.ProgressResp, error)
	CreateUploadURL(ctx context.Context, courseID string, req *edu.UploadURLReq) (*storage.UploadURL, error)
}

type CourseService struct {
	CourseMapper course.IMongoMapper
	UserMapper   user.IMongoMapper
	Storage      storage.IStorage
}

var CourseServiceSet = wire.NewSet(
	wire.Struct(new(CourseService), "*"),
	wire.Bind(new(ICourseService), new(*CourseService)),
)

func (s *CourseService) ListCourses(ctx context.Context, page, limit int64) (*edu.ListCoursesResp, error) {
	courses, total, err := s.CourseMapper.FindActive(ctx, page, limit)
	if err != nil {
		log.CtxError(ctx, "ListCourses failed: %v", err)
		return nil, consts.ErrGetCourseList
	}
	return &edu.ListCoursesResp{
		Courses: nonNil(courses),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// MyCourses lists the courses a teacher teaches, or the courses anyone else
// is enrolled in.
func (s *CourseService) MyCourses(ctx context.Context) ([]*course.Course, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	var courses []*course.Course
	if u.Role == consts.RoleTeacher {
		courses, err = s.CourseMapper.FindByInstructor(ctx, u.ID.Hex())
	} else {
		courses, err = s.CourseMapper.FindByIDs(ctx, u.Courses)
	}
	if err != nil {
		log.CtxError(ctx, "MyCourses for %s failed: %v", u.ID.Hex(), err)
		return nil, consts.ErrGetCourseList
	}
	return nonNil(courses), nil
}

func (s *CourseService) CreateCourse(ctx context.Context, req *edu.CreateCourseReq) (*course.Course, error) {
	u, err := requireRole(ctx, consts.RoleTeacher)
	if err != nil {
		return nil, err
	}
	c := &course.Course{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  u.ID.Hex(),
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		IsActive:    true,
		Modules: lo.Map(req.Modules, func(m edu.ModuleReq, _ int) course.Module {
			return course.Module{Title: m.Title, Content: m.Content, VideoURL: m.VideoURL, Duration: m.Duration}
		}),
		Schedule: lo.Map(req.Schedule, func(e edu.ScheduleReq, _ int) course.ScheduleEntry {
			return course.ScheduleEntry{Day: e.Day, Time: e.Time, Duration: e.Duration, Room: e.Room}
		}),
	}
	if err = s.CourseMapper.Insert(ctx, c); err != nil {
		log.CtxError(ctx, "CreateCourse insert failed: %v", err)
		return nil, consts.ErrCreateCourse
	}
	log.CtxInfo(ctx, "CreateCourse %s by %s", c.ID.Hex(), c.Instructor)
	return c, nil
}

// Enroll adds the student to the course and the course to the student. Both
// writes are set additions, so repeating the call converges and never
// duplicates.
func (s *CourseService) Enroll(ctx context.Context, courseID string) (*edu.EnrollResp, error) {
	u, err := requireRole(ctx, consts.RoleStudent)
	if err != nil {
		return nil, err
	}
	if _, err = s.findCourse(ctx, courseID); err != nil {
		return nil, err
	}
	studentID := u.ID.Hex()
	added, err := s.CourseMapper.AddStudent(ctx, courseID, studentID)
	if err != nil {
		log.CtxError(ctx, "Enroll add student %s to %s failed: %v", studentID, courseID, err)
		return nil, consts.ErrEnroll
	}
	if err = s.UserMapper.AddCourse(ctx, studentID, courseID); err != nil {
		log.CtxError(ctx, "Enroll add course %s to %s failed: %v", courseID, studentID, err)
		return nil, consts.ErrEnroll
	}
	msg := "Enrolled successfully"
	if !added {
		msg = "Already enrolled"
	}
	return &edu.EnrollResp{Message: msg, Enrolled: added}, nil
}

// UpdateProgress records all-or-nothing completion for the caller.
func (s *CourseService) UpdateProgress(ctx context.Context, courseID string, req *edu.ProgressReq) (*edu.ProgressResp, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	p := &user.Progress{
		CourseID:     courseID,
		Percentage:   0,
		LastAccessed: time.Now(),
	}
	if req.Completed {
		p.Percentage = 100
	}
	userID := u.ID.Hex()
	if err = s.UserMapper.UpsertProgress(ctx, userID, courseID, p.Percentage, p.LastAccessed); err != nil {
		log.CtxError(ctx, "UpdateProgress %s/%s failed: %v", userID, courseID, err)
		return nil, consts.ErrUpdateProgress
	}
	if req.ModuleID != "" && c.Module(req.ModuleID) != nil {
		if err = s.CourseMapper.SetModuleCompleted(ctx, courseID, req.ModuleID, userID, req.Completed); err != nil {
			log.CtxError(ctx, "UpdateProgress module %s failed: %v", req.ModuleID, err)
			return nil, consts.ErrUpdateProgress
		}
	}
	return &edu.ProgressResp{Message: "Progress updated", Progress: p}, nil
}

func (s *CourseService) CreateUploadURL(ctx context.Context, courseID string, req *edu.UploadURLReq) (*storage.UploadURL, error) {
	u, err := requireRole(ctx, consts.RoleTeacher)
	if err != nil {
		return nil, err
	}
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c.Instructor != u.ID.Hex() {
		return nil, consts.ErrNotCourseOwner
	}
	if c.Module(req.ModuleID) == nil {
		return nil, consts.ErrNotFound
	}
	prefix := path.Join("courses", courseID, "modules", req.ModuleID)
	upload, err := s.Storage.PresignPut(ctx, prefix, req.Filename, req.ContentType)
	if err != nil {
		return nil, err
	}
	if err = s.CourseMapper.SetModuleVideo(ctx, courseID, req.ModuleID, upload.ObjectURL); err != nil {
		log.CtxError(ctx, "CreateUploadURL set video for %s failed: %v", req.ModuleID, err)
		return nil, consts.ErrPresign
	}
	return upload, nil
}

func (s *CourseService) findCourse(ctx context.Context, id string) (*course.Course, error) {
	c, err := s.CourseMapper.FindOne(ctx, id)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrCourseNotFound
	default:
		log.CtxError(ctx, "find course %s failed: %v", id, err)
		return nil, err
	}
}

func requireRole(ctx context.Context, role consts.Role) (*user.User, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, consts.ErrForbidden
	}
	return u, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
