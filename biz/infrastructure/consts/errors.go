package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus lets grpc status.FromError recover the code
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

func (en *Errno) Error() string {
	return en.err.Error()
}

func (en *Errno) Code() codes.Code {
	return en.code
}

func (en *Errno) Unwrap() error {
	return en.err
}

// NewErrno creates an Errno
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// NewValidationErrno wraps a request validation failure.
func NewValidationErrno(err error) *Errno {
	return NewErrno(codes.InvalidArgument, err)
}

// auth
var (
	ErrNotAuthentication = NewErrno(codes.Unauthenticated, errors.New("not authenticated"))
	ErrInvalidToken      = NewErrno(codes.Unauthenticated, errors.New("invalid or expired token"))
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrSignIn            = NewErrno(codes.Unauthenticated, errors.New("invalid email or password"))
	ErrSignUp            = NewErrno(codes.Internal, errors.New("registration failed, please retry"))
	ErrDuplicateEmail    = NewErrno(codes.AlreadyExists, errors.New("email already registered"))
	ErrInvalidRole       = NewErrno(codes.InvalidArgument, errors.New("role must be one of student, teacher, parent"))
	ErrPasswordTooLong   = NewErrno(codes.InvalidArgument, errors.New("password must be at most 72 bytes"))
	ErrTooManyRequests   = NewErrno(codes.ResourceExhausted, errors.New("too many requests, please try again later"))
)

// domain
var (
	ErrCourseNotFound     = NewErrno(codes.NotFound, errors.New("course not found"))
	ErrAssignmentNotFound = NewErrno(codes.NotFound, errors.New("assignment not found"))
	ErrUserNotFound       = NewErrno(codes.NotFound, errors.New("user not found"))
	ErrNotCourseOwner     = NewErrno(codes.PermissionDenied, errors.New("only the course instructor can do this"))
	ErrAlreadySubmitted   = NewErrno(codes.AlreadyExists, errors.New("already submitted"))
	ErrCreateCourse       = NewErrno(codes.Internal, errors.New("failed to create course"))
	ErrGetCourseList      = NewErrno(codes.Internal, errors.New("failed to list courses"))
	ErrEnroll             = NewErrno(codes.Internal, errors.New("failed to enroll"))
	ErrUpdateProgress     = NewErrno(codes.Internal, errors.New("failed to update progress"))
	ErrCreateAssignment   = NewErrno(codes.Internal, errors.New("failed to create assignment"))
	ErrGetAssignmentList  = NewErrno(codes.Internal, errors.New("failed to list assignments"))
	ErrSubmitAssignment   = NewErrno(codes.Internal, errors.New("failed to submit assignment"))
	ErrGetSubmission      = NewErrno(codes.Internal, errors.New("failed to get submissions"))
	ErrDashboard          = NewErrno(codes.Internal, errors.New("failed to build dashboard"))
	ErrExport             = NewErrno(codes.Internal, errors.New("failed to export report"))
	ErrPresign            = NewErrno(codes.Internal, errors.New("failed to create upload url"))
	ErrNotClassMember     = NewErrno(codes.PermissionDenied, errors.New("join the class before sending messages"))
	ErrNotifications      = NewErrno(codes.Internal, errors.New("failed to load notifications"))
	ErrNoNotification     = NewErrno(codes.NotFound, errors.New("notification not found"))
	ErrMessageSelf        = NewErrno(codes.InvalidArgument, errors.New("cannot send a message to yourself"))
	ErrMessageRecipient   = NewErrno(codes.PermissionDenied, errors.New("messages must be sent to or from a teacher"))
	ErrSendMessage        = NewErrno(codes.Internal, errors.New("failed to send message"))
	ErrGetMessages        = NewErrno(codes.Internal, errors.New("failed to list messages"))
	ErrChatHistory        = NewErrno(codes.Internal, errors.New("failed to load chat history"))
)

// request and upstream errors
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("invalid parameters"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("upstream call failed, please retry"))
	ErrInternal      = NewErrno(codes.Internal, errors.New("internal server error"))
)

// store errors
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("invalid id"))
	ErrUpdate          = NewErrno(codes.Internal, errors.New("update failed"))
)
