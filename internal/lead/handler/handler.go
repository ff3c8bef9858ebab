// Package handler exposes the lead-sync proxy endpoint consumed by the
// wizard UI.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"homesale_backend/internal/crm"
	"homesale_backend/internal/lead/service"
	"homesale_backend/internal/lead/transport"
	"homesale_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// Handler serves POST /lead-sync.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Sync dispatches a lead lifecycle event to the CRM sync service.
func (h *Handler) Sync(c *gin.Context) {
	var req transport.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, transport.SyncResponse{Success: false, Error: "Invalid request body"})
		return
	}

	switch req.Action {
	case "create":
		h.create(c, req)
	case "complete":
		h.complete(c, req)
	default:
		c.JSON(http.StatusBadRequest, transport.SyncResponse{Success: false, Error: "Invalid action"})
	}
}

func (h *Handler) create(c *gin.Context, req transport.SyncRequest) {
	contactID, err := h.svc.Create(c.Request.Context(), req.Address)
	if err != nil {
		writeSyncError(c, err, "Failed to create contact")
		return
	}

	c.JSON(http.StatusOK, transport.SyncResponse{Success: true, ContactID: contactID})
}

func (h *Handler) complete(c *gin.Context, req transport.SyncRequest) {
	report, err := h.svc.Complete(c.Request.Context(), service.CompleteInput{
		Address:        req.Address,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		EstimatedValue: req.Zestimate,
	})
	if err != nil {
		writeSyncError(c, err, "Failed to update contact")
		return
	}

	// Owner-flow success requires only Step A; a failed re-key is reported
	// through logs, never to the visitor.
	if !report.Succeeded() {
		writeSyncError(c, report.Link.Err, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, transport.SyncResponse{Success: true})
}

// writeSyncError maps service and CRM errors onto the proxy's response
// contract, mirroring upstream statuses for CRM request failures.
func writeSyncError(c *gin.Context, err error, failMessage string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), transport.SyncResponse{Success: false, Error: appErr.Message, Details: appErr.Details})
		return
	}

	var reqErr *crm.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.Status, transport.SyncResponse{Success: false, Error: failMessage, Details: decodeDetails(reqErr.Body)})
		return
	}

	var unavailable *crm.UnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusBadGateway, transport.SyncResponse{Success: false, Error: "CRM service unavailable"})
		return
	}

	c.JSON(http.StatusInternalServerError, transport.SyncResponse{Success: false, Error: "Internal server error"})
}

// decodeDetails surfaces the upstream error body as structured JSON when it
// parses, raw text otherwise.
func decodeDetails(body string) interface{} {
	if body == "" {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return body
	}
	return parsed
}
