package valuation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homesale_backend/platform/apperr"
	"homesale_backend/platform/httpkit"
	"homesale_backend/platform/logger"
)

type Handler struct {
	svc *Service
	log *logger.Logger
}

func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Address is required", nil)
		return
	}

	est, err := h.svc.Lookup(c.Request.Context(), req.Address)
	if err != nil {
		httpkit.HandleError(c, apperr.Unavailable("Valuation service unavailable", err))
		return
	}
	if est == nil {
		httpkit.Error(c, http.StatusNotFound, "No estimate available for this address", nil)
		return
	}

	httpkit.OK(c, est)
}
