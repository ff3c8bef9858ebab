// Package transport defines the wire contract for the lead-sync proxy.
package transport

// SyncRequest is the inbound body for POST /lead-sync. Action selects the
// lifecycle event; the remaining fields are read per action.
type SyncRequest struct {
	Action    string `json:"action" binding:"required"`
	Address   string `json:"address"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Zestimate string `json:"zestimate"`
}

// SyncResponse is the outbound body for POST /lead-sync.
type SyncResponse struct {
	Success   bool        `json:"success"`
	ContactID string      `json:"contactId,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}
