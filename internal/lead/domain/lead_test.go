package domain

import "testing"

func TestSetField_EnumValidation(t *testing.T) {
	var lead Lead

	if err := lead.SetField(FieldSellTimeline, "asap"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.SellTimeline != "asap" {
		t.Fatalf("timeline not set, got %q", lead.SellTimeline)
	}

	if err := lead.SetField(FieldSellTimeline, "tomorrow"); err == nil {
		t.Fatal("expected error for unknown timeline code")
	}
	if err := lead.SetField(FieldIsOwner, "maybe"); err == nil {
		t.Fatal("expected error for unknown owner code")
	}
	if err := lead.SetField("zipCode", "62704"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSetField_TrimsFreeText(t *testing.T) {
	var lead Lead
	if err := lead.SetField(FieldFirstName, "  Jane "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.FirstName != "Jane" {
		t.Fatalf("expected trimmed first name, got %q", lead.FirstName)
	}
}

func TestAttachEstimate_GatesResult(t *testing.T) {
	var lead Lead
	if lead.HasEstimate() {
		t.Fatal("fresh lead must not have an estimate")
	}

	value := 450000.0
	lead.AttachEstimate(&value, nil)
	if !lead.HasEstimate() {
		t.Fatal("estimate not attached")
	}

	lead.AttachEstimate(nil, nil)
	if lead.HasEstimate() {
		t.Fatal("nil valuation must clear the estimate gate")
	}
}

func TestSyncState_OneDirectional(t *testing.T) {
	state := SyncNoRecord

	state = state.Advance(SyncPartial)
	if state != SyncPartial {
		t.Fatalf("expected PARTIAL, got %s", state)
	}

	// Re-running create is a no-op state-wise.
	if state.Advance(SyncPartial) != SyncPartial {
		t.Fatal("repeat create must not change state")
	}

	state = state.Advance(SyncComplete)
	if state.Advance(SyncPartial) != SyncComplete {
		t.Fatal("no downgrade path exists")
	}

	state = state.Advance(SyncCompleteVerifiedEmail)
	if state != SyncCompleteVerifiedEmail {
		t.Fatalf("expected COMPLETE_VERIFIED_EMAIL, got %s", state)
	}
}
