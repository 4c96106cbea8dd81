package log

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
)

func Info(format string, args ...any) {
	logx.Infof(format, args...)
}

func Error(format string, args ...any) {
	logx.Errorf(format, args...)
}

// CtxInfo logs with the trace and span ids carried by ctx.
func CtxInfo(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Infof(format, args...)
}

func CtxError(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Errorf(format, args...)
}
