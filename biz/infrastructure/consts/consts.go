package consts

// database fields
const (
	ID                 = "_id"
	CreateTime         = "create_time"
	UpdateTime         = "update_time"
	Email              = "email"
	Courses            = "courses"
	Students           = "students"
	Modules            = "modules"
	Assignments        = "assignments"
	Instructor         = "instructor"
	Course             = "course"
	IsActive           = "is_active"
	Points             = "points"
	Progress           = "progress"
	Achievements       = "achievements"
	AwardedSubmissions = "awarded_submissions"
	ReadNotifications  = "read_notifications"
	Sender             = "sender"
	Recipient          = "recipient"
	Read               = "read"
	Submissions        = "submissions"
	SubmissionStudent  = "submissions.student"
	NotEqual           = "$ne"
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	BearerPrefix    = "Bearer "
)

// defaults
const (
	DefaultPage          int64 = 1
	DefaultPageSize      int64 = 50
	MaxPageSize          int64 = 200
	DefaultMaxPoints     int64 = 100
	DefaultQuizQuestions       = 5
	MaxQuizQuestions           = 50
	QuizQuestionPoints   int64 = 10
	PerfectGrade               = 100
	RecentActivityCount        = 5
	ReconcileBatchSize   int64 = 100
	ReconcileLockKey           = "lock:reconcile:points"
	ReconcileLockExpire        = 60
	RateLimitKeyPrefix         = "rate:api"
	NotificationLimit          = 50
	MessageLimit         int64 = 100
	ChatHistoryLimit           = 50
)

// notification types
const (
	NotificationAssignmentDue = "assignment_due"
	NotificationGradePosted   = "grade_posted"
	NotificationAchievement   = "achievement"
	NotificationSubmission    = "submission_received"
	NotificationMessage       = "message"
)

// achievements
const (
	AchievementPerfectScore     = "Perfect Score"
	AchievementPerfectScoreDesc = "Scored 100 on an assignment"
	AchievementPerfectScoreIcon = "trophy"
)
