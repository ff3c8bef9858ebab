package wizard

import "homesale_backend/internal/lead/domain"

// Step identifies one screen of the estimator flow. The order is fixed:
// the address comes first because it seeds the partial lead, and contact
// info comes last so the completion push has every answer available.
type Step string

const (
	StepAddress   Step = "address"
	StepOwner     Step = "owner"
	StepMortgage  Step = "mortgage"
	StepCondition Step = "condition"
	StepTimeline  Step = "timeline"
	StepContact   Step = "contact"
	StepResult    Step = "result"
)

var stepOrder = []Step{
	StepAddress,
	StepOwner,
	StepMortgage,
	StepCondition,
	StepTimeline,
	StepContact,
	StepResult,
}

// answerField maps each single-answer question step to the lead field it
// fills. The address and contact steps have dedicated handling.
var answerField = map[Step]string{
	StepOwner:     domain.FieldIsOwner,
	StepMortgage:  domain.FieldMortgageStatus,
	StepCondition: domain.FieldHomeCondition,
	StepTimeline:  domain.FieldSellTimeline,
}

// ParseStep maps a stored step string back to a Step.
func ParseStep(s string) (Step, bool) {
	for _, step := range stepOrder {
		if string(step) == s {
			return step, true
		}
	}
	return "", false
}

func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the step after s, or false at the end of the flow.
func (s Step) Next() (Step, bool) {
	i := s.index()
	if i < 0 || i+1 >= len(stepOrder) {
		return s, false
	}
	return stepOrder[i+1], true
}

// Prev returns the step before s, or false at the start of the flow.
func (s Step) Prev() (Step, bool) {
	i := s.index()
	if i <= 0 {
		return s, false
	}
	return stepOrder[i-1], true
}

// Terminal reports whether s is the result screen.
func (s Step) Terminal() bool {
	return s == StepResult
}
