package domain

// SyncState tracks how far a lead has progressed against the CRM, as observed
// through the sync service only. Transitions are one-directional; there is no
// downgrade path. Re-running an earlier event (a second create while already
// PARTIAL or COMPLETE) re-upserts the same record and leaves the state alone.
type SyncState string

const (
	// SyncNoRecord means no CRM call has been attempted for this lead.
	SyncNoRecord SyncState = "NO_RECORD"
	// SyncPartial means the placeholder record exists (after create).
	SyncPartial SyncState = "PARTIAL"
	// SyncComplete means Step A enriched the record with real contact info.
	SyncComplete SyncState = "COMPLETE"
	// SyncCompleteVerifiedEmail means Step B re-keyed the record to the
	// visitor's real email.
	SyncCompleteVerifiedEmail SyncState = "COMPLETE_VERIFIED_EMAIL"
)

func (s SyncState) rank() int {
	switch s {
	case SyncPartial:
		return 1
	case SyncComplete:
		return 2
	case SyncCompleteVerifiedEmail:
		return 3
	default:
		return 0
	}
}

// Advance moves to next only if it is strictly further along; anything else
// is a no-op and the current state is returned.
func (s SyncState) Advance(next SyncState) SyncState {
	if next.rank() > s.rank() {
		return next
	}
	return s
}
