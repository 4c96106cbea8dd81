package main

import (
	"context"

	"edu-platform/biz/adaptor/middleware"
	"edu-platform/biz/infrastructure/util/log"
	"edu-platform/provider"

	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
)

func Init() {
	provider.Init()
	initPropagation()
}

// initPropagation sets b3 as the outbound trace format. Clients wrap their own
// transports with otelhttp.
func initPropagation() {
	otel.SetTextMapPropagator(b3.New())
}

func main() {
	Init()
	p := provider.Get()
	c := p.Config

	tracer, cfg := tracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(c.Metrics.Addr, c.Metrics.Path)),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg), recovery.Recovery(), middleware.AccessLog(c.AccessLog.NoLogPaths))
	register(h)

	ctx, cancel := context.WithCancel(context.Background())
	if err := p.AssignmentService.StartReconciler(ctx); err != nil {
		log.Error("start reconciler failed: %v", err)
	}
	if err := p.RelayService.StartGradeForwarder(ctx); err != nil {
		log.Error("start grade forwarder failed: %v", err)
	}
	h.OnShutdown = append(h.OnShutdown, func(_ context.Context) {
		cancel()
		if err := p.Bus.Close(); err != nil {
			log.Error("close event bus failed: %v", err)
		}
	})

	log.Info("server listening on %s", c.ListenOn)
	h.Spin()
}
