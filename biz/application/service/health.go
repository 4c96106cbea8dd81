package service

import (
	"context"
	"time"

	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/mongodb"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IHealthService interface {
	Check(ctx context.Context) *edu.HealthResp
}

type HealthService struct {
	Database mongodb.IDatabase
}

var HealthServiceSet = wire.NewSet(
	wire.Struct(new(HealthService), "*"),
	wire.Bind(new(IHealthService), new(*HealthService)),
)

// Check always reports OK; the database field tells whether the store answers.
func (s *HealthService) Check(ctx context.Context) *edu.HealthResp {
	resp := &edu.HealthResp{
		Status:    "OK",
		Database:  "Connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if s.Database == nil {
		resp.Database = "Offline"
		return resp
	}
	if err := s.Database.Ping(ctx); err != nil {
		log.CtxError(ctx, "health: database ping failed: %v", err)
		resp.Database = "Offline"
	}
	return resp
}
