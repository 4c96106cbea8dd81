package api

import (
	"context"
	"net/http"

	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// Health reports liveness; it answers 200 even when the database is down.
// @router /api/health [GET]
func Health(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	c.JSON(http.StatusOK, p.HealthService.Check(ctx))
}
