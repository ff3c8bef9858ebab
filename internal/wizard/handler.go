package wizard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homesale_backend/platform/httpkit"
)

// Handler exposes the wizard session endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Start handles POST /api/v1/wizard/sessions.
func (h *Handler) Start(c *gin.Context) {
	state, err := h.svc.StartSession(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, viewOf(state))
}

// Get handles GET /api/v1/wizard/sessions/:id.
func (h *Handler) Get(c *gin.Context) {
	state, err := h.svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, viewOf(state))
}

// Advance handles POST /api/v1/wizard/sessions/:id/advance.
func (h *Handler) Advance(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	state, err := h.svc.Advance(c.Request.Context(), c.Param("id"), AdvanceInput{
		Address:   req.Address,
		Answer:    req.Answer,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Consent:   req.Consent,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, viewOf(state))
}

// Back handles POST /api/v1/wizard/sessions/:id/back.
func (h *Handler) Back(c *gin.Context) {
	state, err := h.svc.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, viewOf(state))
}

// Result handles GET /api/v1/wizard/sessions/:id/result.
func (h *Handler) Result(c *gin.Context) {
	view, err := h.svc.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, view)
}
