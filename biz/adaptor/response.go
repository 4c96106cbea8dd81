package adaptor

import (
	"context"
	"errors"
	"net/http"

	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/util"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"google.golang.org/grpc/codes"
)

var httpStatus = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.AlreadyExists:     http.StatusConflict,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.Unknown:           http.StatusBadGateway,
}

// ErrorStatus maps err to an HTTP status and the message safe to show.
func ErrorStatus(err error) (int, string) {
	var errno *consts.Errno
	if errors.As(err, &errno) {
		if status, ok := httpStatus[errno.Code()]; ok {
			return status, errno.Error()
		}
		return http.StatusInternalServerError, errno.Error()
	}
	return http.StatusInternalServerError, consts.ErrInternal.Error()
}

// PostProcess writes resp with 200, or err as {message}.
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	PostProcessStatus(ctx, c, http.StatusOK, req, resp, err)
}

func PostProcessStatus(ctx context.Context, c *app.RequestContext, status int, req, resp any, err error) {
	if err != nil {
		code, msg := ErrorStatus(err)
		if code >= http.StatusInternalServerError {
			log.CtxError(ctx, "[%s] req=%s, err=%v", c.FullPath(), util.JSONF(req), err)
		} else {
			log.CtxInfo(ctx, "[%s] req=%s, err=%v", c.FullPath(), util.JSONF(req), err)
		}
		c.JSON(code, &basic.Response{Message: msg})
		return
	}
	c.JSON(status, resp)
}

// AbortWithErr stops the handler chain with err rendered as {message}.
func AbortWithErr(c *app.RequestContext, err error) {
	code, msg := ErrorStatus(err)
	c.AbortWithStatusJSON(code, &basic.Response{Message: msg})
}
