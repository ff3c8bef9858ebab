// Package lead wires the lead identity and CRM sync module.
package lead

import (
	"homesale_backend/internal/crm"
	apphttp "homesale_backend/internal/http"
	"homesale_backend/internal/lead/handler"
	"homesale_backend/internal/lead/service"
	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
	"homesale_backend/platform/validator"
)

// Module bundles the CRM sync service and its HTTP proxy route.
type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

func NewModule(cfg config.CRMConfig, val *validator.Validator, log *logger.Logger) *Module {
	client := crm.NewClient(cfg, log)
	svc := service.New(client, cfg, val, log)
	return &Module{
		svc:     svc,
		handler: handler.New(svc),
	}
}

// Service exposes the sync service for the wizard sequencer.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) Name() string {
	return "lead"
}

// RegisterRoutes mounts the proxy at the root path the wizard UI calls.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.POST("/lead-sync", m.handler.Sync)
}

var _ apphttp.Module = (*Module)(nil)
