package service

import (
	"context"
	"errors"
	"time"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/event"
	"edu-platform/biz/infrastructure/redis"
	"edu-platform/biz/infrastructure/repository/assignment"
	"edu-platform/biz/infrastructure/repository/course"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IAssignmentService interface {
	ListByCourse(ctx context.Context, courseID string) ([]*assignment.Assignment, error)
	CreateAssignment(ctx context.Context, req *edu.CreateAssignmentReq) (*assignment.Assignment, error)
	Submit(ctx context.Context, assignmentID string, req *edu.SubmitReq) (*edu.SubmitResp, error)
	MySubmissions(ctx context.Context) ([]*edu.MySubmission, error)
	ReconcileAwards(ctx context.Context) (int, error)
	StartReconciler(ctx context.Context) error
}

type AssignmentService struct {
	Config           *config.Config
	AssignmentMapper assignment.IMongoMapper
	CourseMapper     course.IMongoMapper
	UserMapper       user.IMongoMapper
	Bus              event.IBus
	Locker           redis.ILocker
}

var AssignmentServiceSet = wire.NewSet(
	wire.Struct(new(AssignmentService), "*"),
	wire.Bind(new(IAssignmentService), new(*AssignmentService)),
)

// ListByCourse returns full assignments to the course instructor. Everyone
// else sees no answer keys and only their own submission.
func (s *AssignmentService) ListByCourse(ctx context.Context, courseID string) ([]*assignment.Assignment, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.AssignmentMapper.FindByCourseID(ctx, courseID)
	if err != nil {
		log.CtxError(ctx, "ListByCourse %s failed: %v", courseID, err)
		return nil, consts.ErrGetAssignmentList
	}
	userID := u.ID.Hex()
	return lo.Map(assignments, func(a *assignment.Assignment, _ int) *assignment.Assignment {
		if a.InstructorID == userID {
			return a
		}
		return a.StudentView(userID)
	}), nil
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, req *edu.CreateAssignmentReq) (*assignment.Assignment, error) {
	u, err := requireRole(ctx, consts.RoleTeacher)
	if err != nil {
		return nil, err
	}
	if req.DueDate.IsZero() {
		return nil, consts.NewValidationErrno(errors.New("dueDate is required"))
	}
	c, err := s.CourseMapper.FindOne(ctx, req.CourseID)
	switch {
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrCourseNotFound
	case err != nil:
		log.CtxError(ctx, "CreateAssignment find course %s failed: %v", req.CourseID, err)
		return nil, consts.ErrCreateAssignment
	}
	if c.Instructor != u.ID.Hex() {
		return nil, consts.ErrNotCourseOwner
	}

	a := &assignment.Assignment{
		Title:        req.Title,
		Description:  req.Description,
		CourseID:     req.CourseID,
		InstructorID: u.ID.Hex(),
		DueDate:      req.DueDate,
		MaxPoints:    req.MaxPoints,
		Questions: lo.Map(req.Questions, func(q edu.QuestionReq, _ int) assignment.Question {
			return assignment.Question{
				Question:      q.Question,
				Type:          consts.QuestionType(q.Type),
				Options:       nonNil(q.Options),
				CorrectAnswer: q.CorrectAnswer,
				Points:        q.Points,
			}
		}),
	}
	if a.MaxPoints == 0 {
		a.MaxPoints = consts.DefaultMaxPoints
	}
	if err = s.AssignmentMapper.Insert(ctx, a); err != nil {
		log.CtxError(ctx, "CreateAssignment insert failed: %v", err)
		return nil, consts.ErrCreateAssignment
	}
	if err = s.CourseMapper.AddAssignment(ctx, req.CourseID, a.ID.Hex()); err != nil {
		log.CtxError(ctx, "CreateAssignment link %s to course %s failed: %v", a.ID.Hex(), req.CourseID, err)
	}
	return a, nil
}

// Submit grades and stores the caller's answers. The conditional push
// rejects a second submission even when two race; the point award that
// follows is keyed by submission id and replayed by the reconciler if it
// does not complete here.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID string, req *edu.SubmitReq) (*edu.SubmitResp, error) {
	u, err := requireRole(ctx, consts.RoleStudent)
	if err != nil {
		return nil, err
	}
	a, err := s.AssignmentMapper.FindOne(ctx, assignmentID)
	switch {
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrAssignmentNotFound
	case err != nil:
		log.CtxError(ctx, "Submit find assignment %s failed: %v", assignmentID, err)
		return nil, consts.ErrSubmitAssignment
	}
	studentID := u.ID.Hex()
	if a.SubmissionOf(studentID) != nil {
		return nil, consts.ErrAlreadySubmitted
	}

	sub := &assignment.Submission{
		ID:          primitive.NewObjectID(),
		Student:     studentID,
		Answers:     nonNil(req.Answers),
		SubmittedAt: time.Now(),
		Grade:       GradeSubmission(a.Questions, req.Answers),
		AIGraded:    true,
	}
	if err = s.AssignmentMapper.PushSubmission(ctx, assignmentID, sub); err != nil {
		if errors.Is(err, consts.ErrAlreadySubmitted) || errors.Is(err, consts.ErrAssignmentNotFound) {
			return nil, err
		}
		log.CtxError(ctx, "Submit push submission for %s failed: %v", assignmentID, err)
		return nil, consts.ErrSubmitAssignment
	}

	if err = s.award(ctx, a, sub); err != nil {
		log.CtxError(ctx, "Submit award %s deferred to reconciler: %v", sub.ID.Hex(), err)
	} else {
		sub.PointsAwarded = true
	}
	log.CtxInfo(ctx, "Submit %s by %s grade %.2f", assignmentID, studentID, sub.Grade)
	return &edu.SubmitResp{
		Message:      "Assignment submitted",
		Grade:        sub.Grade,
		PointsEarned: PointsForGrade(sub.Grade),
		Submission:   sub,
	}, nil
}

// award credits the submission's points once, grants the perfect score
// achievement, marks the submission settled and announces the grade. Every
// step tolerates being repeated.
func (s *AssignmentService) award(ctx context.Context, a *assignment.Assignment, sub *assignment.Submission) error {
	points := PointsForGrade(sub.Grade)
	changed, err := s.UserMapper.AwardPoints(ctx, sub.Student, sub.ID.Hex(), points)
	if err != nil {
		return err
	}
	if sub.Grade >= consts.PerfectGrade {
		err = s.UserMapper.AddAchievement(ctx, sub.Student, user.Achievement{
			Title:       consts.AchievementPerfectScore,
			Description: consts.AchievementPerfectScoreDesc,
			Icon:        consts.AchievementPerfectScoreIcon,
			EarnedAt:    time.Now(),
		})
		if err != nil {
			return err
		}
	}
	if err = s.AssignmentMapper.MarkPointsAwarded(ctx, a.ID.Hex(), sub.ID.Hex()); err != nil {
		return err
	}
	if changed && s.Bus != nil {
		err = s.Bus.Publish(ctx, event.TopicSubmissionGraded, event.SubmissionGraded{
			AssignmentID:    a.ID.Hex(),
			AssignmentTitle: a.Title,
			CourseID:        a.CourseID,
			SubmissionID:    sub.ID.Hex(),
			StudentID:       sub.Student,
			Grade:           sub.Grade,
			PointsAwarded:   points,
		})
		if err != nil {
			log.CtxError(ctx, "publish %s for %s failed: %v", event.TopicSubmissionGraded, sub.ID.Hex(), err)
		}
	}
	return nil
}

func (s *AssignmentService) MySubmissions(ctx context.Context) ([]*edu.MySubmission, error) {
	u, err := requireRole(ctx, consts.RoleStudent)
	if err != nil {
		return nil, err
	}
	studentID := u.ID.Hex()
	assignments, err := s.AssignmentMapper.FindByStudent(ctx, studentID)
	if err != nil {
		log.CtxError(ctx, "MySubmissions for %s failed: %v", studentID, err)
		return nil, consts.ErrGetSubmission
	}
	courseIDs := lo.Uniq(lo.Map(assignments, func(a *assignment.Assignment, _ int) string { return a.CourseID }))
	courses, err := s.CourseMapper.FindByIDs(ctx, courseIDs)
	if err != nil {
		log.CtxError(ctx, "MySubmissions load courses failed: %v", err)
		return nil, consts.ErrGetSubmission
	}
	titles := lo.SliceToMap(courses, func(c *course.Course) (string, string) { return c.ID.Hex(), c.Title })

	result := make([]*edu.MySubmission, 0, len(assignments))
	for _, a := range assignments {
		sub := a.SubmissionOf(studentID)
		if sub == nil {
			continue
		}
		result = append(result, &edu.MySubmission{
			Assignment: edu.SubmissionAssignment{
				ID:        a.ID.Hex(),
				Title:     a.Title,
				Course:    titles[a.CourseID],
				DueDate:   a.DueDate,
				MaxPoints: a.MaxPoints,
			},
			Submission: sub,
		})
	}
	return result, nil
}

// ReconcileAwards settles submissions whose point award did not complete.
// Only one instance runs it at a time.
func (s *AssignmentService) ReconcileAwards(ctx context.Context) (int, error) {
	settled := 0
	run := func(ctx context.Context) error {
		assignments, err := s.AssignmentMapper.FindPendingAwards(ctx, consts.ReconcileBatchSize)
		if err != nil {
			return err
		}
		for _, a := range assignments {
			for i := range a.Submissions {
				sub := &a.Submissions[i]
				if sub.PointsAwarded {
					continue
				}
				if err := s.award(ctx, a, sub); err != nil {
					log.CtxError(ctx, "reconcile award %s failed: %v", sub.ID.Hex(), err)
					continue
				}
				settled++
			}
		}
		return nil
	}
	if s.Locker == nil {
		return settled, run(ctx)
	}
	_, err := s.Locker.TryLock(ctx, consts.ReconcileLockKey, consts.ReconcileLockExpire, run)
	return settled, err
}

func (s *AssignmentService) StartReconciler(ctx context.Context) error {
	interval := 30 * time.Second
	if s.Config != nil && s.Config.Reconcile.Interval > 0 {
		interval = s.Config.Reconcile.Interval
	}
	log.Info("start point reconciler, interval %s", interval)

	gopool.CtxGo(ctx, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.ReconcileAwards(context.Background())
				if err != nil {
					log.Error("reconcile awards failed: %v", err)
				} else if n > 0 {
					log.Info("reconciled %d point awards", n)
				}
			}
		}
	})
	return nil
}
