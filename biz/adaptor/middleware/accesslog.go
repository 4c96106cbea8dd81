package middleware

import (
	"context"
	"time"

	"edu-platform/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/trace"
)

// AccessLog writes one line per request after the handler chain returns.
func AccessLog(noLogPaths []string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		path := string(c.Request.URI().Path())
		if lo.Contains(noLogPaths, path) {
			return
		}
		traceID := "-"
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		log.CtxInfo(ctx, "%s %s %d %s %s trace=%s", c.Method(), path, c.Response.StatusCode(), time.Since(start), c.ClientIP(), traceID)
	}
}
