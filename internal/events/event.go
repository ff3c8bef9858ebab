// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"homesale_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCaptured is published after the address step creates a partial lead.
type LeadCaptured struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Address   string `json:"address"`
	ContactID string `json:"contactId,omitempty"`
}

func (e LeadCaptured) EventName() string { return "lead.captured" }

// LeadCompleted is published after the contact step pushes the full lead.
type LeadCompleted struct {
	BaseEvent
	SessionID     string `json:"sessionId"`
	Address       string `json:"address"`
	HasPhone      bool   `json:"hasPhone"`
	HasEmail      bool   `json:"hasEmail"`
	EmailVerified bool   `json:"emailVerified"`
}

func (e LeadCompleted) EventName() string { return "lead.completed" }

// ValuationAttached is published when an estimate is merged into a session.
type ValuationAttached struct {
	BaseEvent
	SessionID      string  `json:"sessionId"`
	Address        string  `json:"address"`
	EstimatedValue float64 `json:"estimatedValue"`
}

func (e ValuationAttached) EventName() string { return "lead.valuation.attached" }

// CrmSyncFailed is the observability channel for swallowed CRM failures:
// the wizard never surfaces these to the user, it reports them here.
type CrmSyncFailed struct {
	BaseEvent
	SessionID string `json:"sessionId,omitempty"`
	Action    string `json:"action"` // "create" or "complete"
	Step      string `json:"step"`   // "create", "link", "rekey"
	Status    int    `json:"status,omitempty"`
	Body      string `json:"body,omitempty"`
	Reason    string `json:"reason"`
}

func (e CrmSyncFailed) EventName() string { return "lead.crm.sync_failed" }
