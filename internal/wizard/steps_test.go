package wizard

import "testing"

func TestStepOrder(t *testing.T) {
	want := []Step{StepAddress, StepOwner, StepMortgage, StepCondition, StepTimeline, StepContact, StepResult}

	step := StepAddress
	for i := 1; i < len(want); i++ {
		next, ok := step.Next()
		if !ok {
			t.Fatalf("no step after %q", step)
		}
		if next != want[i] {
			t.Fatalf("after %q got %q, want %q", step, next, want[i])
		}
		step = next
	}

	if _, ok := StepResult.Next(); ok {
		t.Error("result step must be terminal")
	}
	if !StepResult.Terminal() {
		t.Error("Terminal() = false for result step")
	}
}

func TestStepPrev(t *testing.T) {
	prev, ok := StepOwner.Prev()
	if !ok || prev != StepAddress {
		t.Fatalf("Prev(owner) = %q, %v", prev, ok)
	}
	if _, ok := StepAddress.Prev(); ok {
		t.Error("address step must have no predecessor")
	}
}

func TestParseStep(t *testing.T) {
	step, ok := ParseStep("timeline")
	if !ok || step != StepTimeline {
		t.Fatalf("ParseStep(timeline) = %q, %v", step, ok)
	}
	if _, ok := ParseStep("bogus"); ok {
		t.Error("ParseStep accepted an unknown step")
	}
}
