package service

import (
	"context"
	"sync"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/event"
	"edu-platform/biz/infrastructure/relay"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/message"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
	// failAward makes AwardPoints fail this many times.
	failAward int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*user.User{}}
}

func (f *fakeUsers) add(name string, role consts.Role) *user.User {
	u := &user.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com", Role: role}
	_ = f.Insert(context.Background(), u)
	return u
}

func (f *fakeUsers) get(id string) *user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *f.users[id]
	return &u
}

func (f *fakeUsers) Insert(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.users {
		if o.Email == u.Email {
			return consts.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID.Hex()] = u
	return nil
}

func (f *fakeUsers) FindOne(_ context.Context, id string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	u, ok := f.users[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) FindOneByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeUsers) AddCourse(_ context.Context, id, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return consts.ErrNotFound
	}
	if !lo.Contains(u.Courses, courseID) {
		u.Courses = append(u.Courses, courseID)
	}
	return nil
}

func (f *fakeUsers) AwardPoints(_ context.Context, id, submissionID string, points int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAward > 0 {
		f.failAward--
		return false, consts.ErrUpdate
	}
	u, ok := f.users[id]
	if !ok || lo.Contains(u.AwardedSubmissions, submissionID) {
		return false, nil
	}
	u.Points += points
	u.AwardedSubmissions = append(u.AwardedSubmissions, submissionID)
	return true, nil
}

func (f *fakeUsers) UpsertProgress(_ context.Context, id, courseID string, percentage int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return consts.ErrNotFound
	}
	if p := u.ProgressFor(courseID); p != nil {
		p.Percentage = percentage
		p.LastAccessed = at
		return nil
	}
	u.Progress = append(u.Progress, user.Progress{CourseID: courseID, Percentage: percentage, LastAccessed: at})
	return nil
}

func (f *fakeUsers) MarkNotificationRead(_ context.Context, id, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return consts.ErrNotFound
	}
	if !lo.Contains(u.ReadNotifications, notificationID) {
		u.ReadNotifications = append(u.ReadNotifications, notificationID)
	}
	return nil
}

func (f *fakeUsers) AddAchievement(_ context.Context, id string, a user.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.HasAchievement(a.Title) {
		return nil
	}
	u.Achievements = append(u.Achievements, a)
	return nil
}

type fakeCourses struct {
	mu      sync.Mutex
	courses []*course.Course
}

func (f *fakeCourses) find(id string) *course.Course {
	for _, c := range f.courses {
		if c.ID.Hex() == id {
			return c
		}
	}
	return nil
}

func (f *fakeCourses) Insert(_ context.Context, c *course.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	for i := range c.Modules {
		if c.Modules[i].ID.IsZero() {
			c.Modules[i].ID = primitive.NewObjectID()
		}
	}
	f.courses = append(f.courses, c)
	return nil
}

func (f *fakeCourses) FindOne(_ context.Context, id string) (*course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	if c := f.find(id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, consts.ErrNotFound
}

func (f *fakeCourses) FindActive(_ context.Context, page, size int64) ([]*course.Course, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	active := lo.Filter(f.courses, func(c *course.Course, _ int) bool { return c.IsActive })
	start := (page - 1) * size
	if start >= int64(len(active)) {
		return nil, int64(len(active)), nil
	}
	end := min(start+size, int64(len(active)))
	return active[start:end], int64(len(active)), nil
}

func (f *fakeCourses) FindByInstructor(_ context.Context, instructorID string) ([]*course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo.Filter(f.courses, func(c *course.Course, _ int) bool { return c.Instructor == instructorID }), nil
}

func (f *fakeCourses) FindByIDs(_ context.Context, ids []string) ([]*course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo.Filter(f.courses, func(c *course.Course, _ int) bool { return lo.Contains(ids, c.ID.Hex()) }), nil
}

func (f *fakeCourses) AddStudent(_ context.Context, id, studentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.find(id)
	if c == nil {
		return false, consts.ErrNotFound
	}
	if c.HasStudent(studentID) {
		return false, nil
	}
	c.Students = append(c.Students, studentID)
	return true, nil
}

func (f *fakeCourses) AddAssignment(_ context.Context, id, assignmentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.find(id); c != nil && !lo.Contains(c.Assignments, assignmentID) {
		c.Assignments = append(c.Assignments, assignmentID)
	}
	return nil
}

func (f *fakeCourses) SetModuleCompleted(_ context.Context, id, moduleID, userID string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.find(id)
	if c == nil || c.Module(moduleID) == nil {
		return consts.ErrNotFound
	}
	m := c.Module(moduleID)
	m.Completed = lo.Without(m.Completed, userID)
	if completed {
		m.Completed = append(m.Completed, userID)
	}
	return nil
}

func (f *fakeCourses) SetModuleVideo(_ context.Context, id, moduleID, videoURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.find(id)
	if c == nil || c.Module(moduleID) == nil {
		return consts.ErrNotFound
	}
	c.Module(moduleID).VideoURL = videoURL
	return nil
}

type fakeAssignments struct {
	mu          sync.Mutex
	assignments []*assignment.Assignment
}

func (f *fakeAssignments) find(id string) *assignment.Assignment {
	for _, a := range f.assignments {
		if a.ID.Hex() == id {
			return a
		}
	}
	return nil
}

func (f *fakeAssignments) filter(pred func(a *assignment.Assignment) bool) []*assignment.Assignment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo.FilterMap(f.assignments, func(a *assignment.Assignment, _ int) (*assignment.Assignment, bool) {
		if !pred(a) {
			return nil, false
		}
		cp := *a
		cp.Submissions = append([]assignment.Submission{}, a.Submissions...)
		return &cp, true
	})
}

func (f *fakeAssignments) Insert(_ context.Context, a *assignment.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.Submissions == nil {
		a.Submissions = []assignment.Submission{}
	}
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeAssignments) FindOne(_ context.Context, id string) (*assignment.Assignment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	found := f.filter(func(a *assignment.Assignment) bool { return a.ID.Hex() == id })
	if len(found) == 0 {
		return nil, consts.ErrNotFound
	}
	return found[0], nil
}

func (f *fakeAssignments) FindByCourseID(_ context.Context, courseID string) ([]*assignment.Assignment, error) {
	return f.filter(func(a *assignment.Assignment) bool { return a.CourseID == courseID }), nil
}

func (f *fakeAssignments) FindByCourseIDs(_ context.Context, courseIDs []string) ([]*assignment.Assignment, error) {
	return f.filter(func(a *assignment.Assignment) bool { return lo.Contains(courseIDs, a.CourseID) }), nil
}

func (f *fakeAssignments) FindByInstructor(_ context.Context, instructorID string) ([]*assignment.Assignment, error) {
	return f.filter(func(a *assignment.Assignment) bool { return a.InstructorID == instructorID }), nil
}

func (f *fakeAssignments) FindByStudent(_ context.Context, studentID string) ([]*assignment.Assignment, error) {
	return f.filter(func(a *assignment.Assignment) bool { return a.SubmissionOf(studentID) != nil }), nil
}

func (f *fakeAssignments) PushSubmission(_ context.Context, id string, sub *assignment.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.find(id)
	if a == nil {
		return consts.ErrAssignmentNotFound
	}
	if a.SubmissionOf(sub.Student) != nil {
		return consts.ErrAlreadySubmitted
	}
	a.Submissions = append(a.Submissions, *sub)
	return nil
}

func (f *fakeAssignments) MarkPointsAwarded(_ context.Context, id, submissionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a := f.find(id); a != nil {
		for i := range a.Submissions {
			if a.Submissions[i].ID.Hex() == submissionID {
				a.Submissions[i].PointsAwarded = true
			}
		}
	}
	return nil
}

func (f *fakeAssignments) FindPendingAwards(_ context.Context, limit int64) ([]*assignment.Assignment, error) {
	pending := f.filter(func(a *assignment.Assignment) bool {
		return lo.ContainsBy(a.Submissions, func(s assignment.Submission) bool { return !s.PointsAwarded })
	})
	if int64(len(pending)) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

type fakeBus struct {
	mu        sync.Mutex
	published []any
}

func (b *fakeBus) Publish(_ context.Context, _ string, data any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, data)
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, _ string, _ func(ctx context.Context, e *event.Event) error) error {
	<-ctx.Done()
	return nil
}

func (b *fakeBus) Close() error { return nil }

func (b *fakeBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}

type fakeHistory struct {
	mu   sync.Mutex
	msgs []*relay.ChatMessage
}

func (h *fakeHistory) Append(_ context.Context, msg *relay.ChatMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
	return nil
}

func (h *fakeHistory) Recent(_ context.Context, classID string, limit int) ([]*relay.ChatMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := lo.Filter(h.msgs, func(m *relay.ChatMessage, _ int) bool { return m.ClassID == classID })
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (h *fakeHistory) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.msgs)
}

type fakeMessages struct {
	mu   sync.Mutex
	msgs []*message.Message
}

func (f *fakeMessages) Insert(_ context.Context, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreateTime = time.Now().Add(time.Duration(len(f.msgs)) * time.Millisecond)
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeMessages) FindByParticipant(_ context.Context, userID string, limit int64) ([]*message.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*message.Message
	for i := len(f.msgs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if m := f.msgs[i]; m.Sender == userID || m.Recipient == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMessages) MarkRead(_ context.Context, id, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return consts.ErrInvalidObjectId
	}
	for _, m := range f.msgs {
		if m.ID.Hex() == id && m.Recipient == recipientID {
			m.Read = true
			return nil
		}
	}
	return consts.ErrNotFound
}

func as(u *user.User) context.Context {
	return adaptor.InjectUser(context.Background(), u)
}
