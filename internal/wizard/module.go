package wizard

import (
	"homesale_backend/internal/events"
	apphttp "homesale_backend/internal/http"
	"homesale_backend/internal/session"
	"homesale_backend/platform/logger"
)

type Module struct {
	handler *Handler
}

func NewModule(store session.Store, leads LeadSyncer, valuer Valuer, bus events.Bus, log *logger.Logger) *Module {
	svc := NewService(store, leads, valuer, bus, log)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string { return "wizard" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sessions := ctx.V1.Group("/wizard/sessions")
	sessions.POST("", m.handler.Start)
	sessions.GET("/:id", m.handler.Get)
	sessions.POST("/:id/advance", m.handler.Advance)
	sessions.POST("/:id/back", m.handler.Back)
	sessions.GET("/:id/result", m.handler.Result)
}
