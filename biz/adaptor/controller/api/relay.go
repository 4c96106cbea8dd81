package api

import (
	"context"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/infrastructure/util/log"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(_ *app.RequestContext) bool { return true },
}

// Relay upgrades an authenticated request to the class chat socket.
// @router /api/relay [GET]
func Relay(ctx context.Context, c *app.RequestContext) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		adaptor.AbortWithErr(c, err)
		return
	}
	p := provider.Get()
	err = upgrader.Upgrade(c, func(conn *websocket.Conn) {
		p.RelayService.Serve(ctx, u, conn)
	})
	if err != nil {
		log.CtxError(ctx, "relay upgrade for %s failed: %v", u.ID.Hex(), err)
	}
}
