package api

import (
	"context"
	"net/http"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// Notifications .
// @router /api/communication/notifications [GET]
func Notifications(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.CommunicationService.Notifications(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// MarkNotificationRead .
// @router /api/communication/notifications/:id/read [PUT]
func MarkNotificationRead(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.CommunicationService.MarkNotificationRead(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

// SendMessage .
// @router /api/communication/messages [POST]
func SendMessage(ctx context.Context, c *app.RequestContext) {
	var req edu.SendMessageReq
	if err := adaptor.BindAndValidate(c, &req); err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}
	p := provider.Get()
	resp, err := p.CommunicationService.SendMessage(ctx, &req)
	adaptor.PostProcessStatus(ctx, c, http.StatusCreated, &req, resp, err)
}

// ListMessages .
// @router /api/communication/messages [GET]
func ListMessages(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.CommunicationService.ListMessages(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// ChatHistory returns recent relay messages for a class.
// @router /api/communication/chat/:classId [GET]
func ChatHistory(ctx context.Context, c *app.RequestContext) {
	classID := c.Param("classId")
	p := provider.Get()
	resp, err := p.CommunicationService.ChatHistory(ctx, classID)
	adaptor.PostProcess(ctx, c, classID, resp, err)
}
