package adaptor

import (
	"errors"
	"fmt"
	"strings"

	"edu-platform/biz/infrastructure/consts"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate binds the request into req and runs its validate tags.
func BindAndValidate(c *app.RequestContext, req any) error {
	if err := c.Bind(req); err != nil {
		return consts.NewValidationErrno(fmt.Errorf("malformed request: %w", err))
	}
	return Validate(req)
}

func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return consts.NewValidationErrno(err)
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describe(fe))
	}
	return consts.NewValidationErrno(errors.New(strings.Join(msgs, "; ")))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "min", "max", "gte":
		return fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
	default:
		return field + " is invalid"
	}
}
