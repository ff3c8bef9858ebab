package suggest

import (
	apphttp "homesale_backend/internal/http"
	"homesale_backend/platform/logger"
)

type Module struct {
	handler *Handler
}

func NewModule(log *logger.Logger) *Module {
	svc := NewService(log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string { return "suggest" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/address/suggestions", ctx.LookupRateLimiter.RateLimit(), m.handler.Suggestions)
}
