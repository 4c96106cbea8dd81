package middleware

import (
	"context"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/cloudwego/hertz/pkg/app"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Authenticate resolves the bearer token to a user and attaches it to ctx.
func Authenticate(auth Authenticator) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		u, err := auth.Authenticate(ctx, adaptor.ExtractToken(c))
		if err != nil {
			adaptor.AbortWithErr(c, err)
			return
		}
		c.Next(adaptor.InjectUser(ctx, u))
	}
}

// Authorize admits only users whose role is role.
func Authorize(role consts.Role) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		u, err := adaptor.ExtractUser(ctx)
		if err != nil {
			adaptor.AbortWithErr(c, err)
			return
		}
		if u.Role != role {
			adaptor.AbortWithErr(c, consts.ErrForbidden)
			return
		}
		c.Next(ctx)
	}
}
