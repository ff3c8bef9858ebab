package valuation

import (
	apphttp "homesale_backend/internal/http"
	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
)

type Module struct {
	svc     *Service
	handler *Handler
}

func NewModule(cfg config.ValuationConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc, log),
	}
}

func (m *Module) Name() string { return "valuation" }

// Service exposes the lookup service for other modules.
func (m *Module) Service() *Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/valuations", ctx.LookupRateLimiter.RateLimit(), m.handler.Lookup)
}
