package wizard

import (
	"homesale_backend/internal/lead/domain"
	"homesale_backend/internal/session"
)

// AdvanceRequest is the request body for the advance endpoint. Which
// fields matter depends on the session's current step.
type AdvanceRequest struct {
	Address   string `json:"address"`
	Answer    string `json:"answer"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Consent   bool   `json:"consent"`
}

// SessionView is the session as shown to the frontend. Sync internals
// stay server-side.
type SessionView struct {
	SessionID string      `json:"sessionId"`
	Step      string      `json:"step"`
	Lead      domain.Lead `json:"lead"`
}

func viewOf(state *session.State) SessionView {
	return SessionView{
		SessionID: state.ID,
		Step:      state.Step,
		Lead:      state.Lead,
	}
}
