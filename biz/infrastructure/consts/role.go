package consts

import "strings"

// Role is the closed set of account roles checked at the authorization boundary.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// ParseRole normalizes s into a Role. An empty string defaults to RoleStudent.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RoleStudent, nil
	}
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionEssay          QuestionType = "essay"
	QuestionCode           QuestionType = "code"
)

// AutoGradable reports whether answers to this question type are scored without review.
func (t QuestionType) AutoGradable() bool {
	return t == QuestionMultipleChoice
}
