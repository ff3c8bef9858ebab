package suggest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homesale_backend/platform/httpkit"
)

// Handler exposes the address suggestions endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Suggestions handles GET /api/v1/address/suggestions?q=...
func (h *Handler) Suggestions(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	candidates, err := h.svc.SearchAddress(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "address lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, LookupResponse{Candidates: candidates})
}
