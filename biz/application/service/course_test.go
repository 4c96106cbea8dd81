package service

import (
	"context"
	"testing"

	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct{}

func (fakeStorage) PresignPut(_ context.Context, prefix, filename, _ string) (*storage.UploadURL, error) {
	key := prefix + "/" + filename
	return &storage.UploadURL{URL: "https://signed/" + key, Key: key, ObjectURL: "https://bucket/" + key}, nil
}

type courseFixture struct {
	svc     *CourseService
	users   *fakeUsers
	courses *fakeCourses
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{users: newFakeUsers(), courses: &fakeCourses{}}
	f.svc = &CourseService{CourseMapper: f.courses, UserMapper: f.users, Storage: fakeStorage{}}
	return f
}

func (f *courseFixture) createCourse(t *testing.T, teacherName string) string {
	t.Helper()
	teacher := f.users.add(teacherName, consts.RoleTeacher)
	c, err := f.svc.CreateCourse(as(teacher), &edu.CreateCourseReq{
		Title:       "Algebra",
		Description: "Linear equations",
		Modules:     []edu.ModuleReq{{Title: "Intro"}},
	})
	require.NoError(t, err)
	return c.ID.Hex()
}

func TestCreateCourseRequiresTeacher(t *testing.T) {
	f := newCourseFixture()
	student := f.users.add("sam", consts.RoleStudent)
	_, err := f.svc.CreateCourse(as(student), &edu.CreateCourseReq{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, consts.ErrForbidden)

	_, err = f.svc.CreateCourse(context.Background(), &edu.CreateCourseReq{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
}

func TestCreateCourseSetsInstructor(t *testing.T) {
	f := newCourseFixture()
	teacher := f.users.add("tia", consts.RoleTeacher)
	c, err := f.svc.CreateCourse(as(teacher), &edu.CreateCourseReq{Title: "Physics", Description: "Motion"})
	require.NoError(t, err)
	assert.Equal(t, teacher.ID.Hex(), c.Instructor)
	assert.True(t, c.IsActive)

	mine, err := f.svc.MyCourses(as(teacher))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Physics", mine[0].Title)
}

func TestEnrollIsIdempotentAndSymmetric(t *testing.T) {
	f := newCourseFixture()
	courseID := f.createCourse(t, "tia")
	student := f.users.add("sam", consts.RoleStudent)

	resp, err := f.svc.Enroll(as(student), courseID)
	require.NoError(t, err)
	assert.True(t, resp.Enrolled)

	resp, err = f.svc.Enroll(as(student), courseID)
	require.NoError(t, err)
	assert.False(t, resp.Enrolled)

	c, err := f.courses.FindOne(context.Background(), courseID)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID.Hex()}, c.Students)
	assert.Equal(t, []string{courseID}, f.users.get(student.ID.Hex()).Courses)

	mine, err := f.svc.MyCourses(as(f.users.get(student.ID.Hex())))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestEnrollErrors(t *testing.T) {
	f := newCourseFixture()
	courseID := f.createCourse(t, "tia")
	student := f.users.add("sam", consts.RoleStudent)
	parent := f.users.add("pat", consts.RoleParent)

	_, err := f.svc.Enroll(as(parent), courseID)
	assert.ErrorIs(t, err, consts.ErrForbidden)
	_, err = f.svc.Enroll(as(student), "not-an-id")
	assert.ErrorIs(t, err, consts.ErrCourseNotFound)
	_, err = f.svc.Enroll(as(student), "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, consts.ErrCourseNotFound)
}

func TestListCoursesPages(t *testing.T) {
	f := newCourseFixture()
	for i := 0; i < 3; i++ {
		f.createCourse(t, "tia"+string(rune('a'+i)))
	}
	resp, err := f.svc.ListCourses(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Courses, 1)

	resp, err = f.svc.ListCourses(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.NotNil(t, resp.Courses)
	assert.Empty(t, resp.Courses)
}

func TestUpdateProgressIsAllOrNothing(t *testing.T) {
	f := newCourseFixture()
	courseID := f.createCourse(t, "tia")
	student := f.users.add("sam", consts.RoleStudent)
	moduleID := f.courses.courses[0].Modules[0].ID.Hex()

	resp, err := f.svc.UpdateProgress(as(student), courseID, &edu.ProgressReq{ModuleID: moduleID, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.Progress.Percentage)
	assert.Contains(t, f.courses.courses[0].Modules[0].Completed, student.ID.Hex())

	_, err = f.svc.UpdateProgress(as(student), courseID, &edu.ProgressReq{ModuleID: moduleID})
	require.NoError(t, err)
	u := f.users.get(student.ID.Hex())
	require.Len(t, u.Progress, 1)
	assert.Equal(t, int64(0), u.Progress[0].Percentage)
	assert.NotContains(t, f.courses.courses[0].Modules[0].Completed, student.ID.Hex())

	_, err = f.svc.UpdateProgress(as(student), "64b7f0c2a1b2c3d4e5f60718", &edu.ProgressReq{Completed: true})
	assert.ErrorIs(t, err, consts.ErrCourseNotFound)
}

func TestCreateUploadURL(t *testing.T) {
	f := newCourseFixture()
	courseID := f.createCourse(t, "tia")
	c := f.courses.courses[0]
	owner := f.users.get(c.Instructor)
	moduleID := c.Modules[0].ID.Hex()

	upload, err := f.svc.CreateUploadURL(as(owner), courseID, &edu.UploadURLReq{ModuleID: moduleID, Filename: "intro.mp4"})
	require.NoError(t, err)
	assert.Contains(t, upload.Key, moduleID)
	assert.Equal(t, upload.ObjectURL, c.Modules[0].VideoURL)

	other := f.users.add("otto", consts.RoleTeacher)
	_, err = f.svc.CreateUploadURL(as(other), courseID, &edu.UploadURLReq{ModuleID: moduleID, Filename: "x.mp4"})
	assert.ErrorIs(t, err, consts.ErrNotCourseOwner)

	disabled, err := storage.NewS3Storage(&config.Config{})
	require.NoError(t, err)
	f.svc.Storage = disabled
	_, err = f.svc.CreateUploadURL(as(owner), courseID, &edu.UploadURLReq{ModuleID: moduleID, Filename: "x.mp4"})
	assert.ErrorIs(t, err, consts.ErrPresign)
	assert.Equal(t, upload.ObjectURL, f.courses.find(courseID).Modules[0].VideoURL)
}
