// Package domain holds the lead entity and its state rules.
package domain

import (
	"fmt"
	"strings"

	"homesale_backend/platform/sanitize"
)

// Answer codes collected by the wizard's qualifying questions. The literal
// values are part of the CRM payload contract and must not be renamed.
var (
	OwnerOptions     = []string{"yes", "no"}
	MortgageOptions  = []string{"mortgage", "paid_off", "not_sure"}
	ConditionOptions = []string{"nothing", "little_work", "major_work", "tear_down"}
	TimelineOptions  = []string{"asap", "1-3_months", "3-6_months", "6-12_months", "no_plans"}
)

// Field names accepted by Lead.SetField. These mirror the wizard's form
// fields one to one.
const (
	FieldAddress        = "address"
	FieldIsOwner        = "isOwner"
	FieldMortgageStatus = "mortgageStatus"
	FieldHomeCondition  = "homeCondition"
	FieldSellTimeline   = "sellTimeline"
	FieldFirstName      = "firstName"
	FieldLastName       = "lastName"
	FieldPhone          = "phone"
	FieldEmail          = "email"
)

// Lead is the in-progress record of one visitor's answers and eventual
// contact info. It lives only inside a wizard session and is discarded with
// it; there is no durable storage.
type Lead struct {
	Address        string `json:"address"`
	IsOwner        string `json:"isOwner,omitempty"`
	MortgageStatus string `json:"mortgageStatus,omitempty"`
	HomeCondition  string `json:"homeCondition,omitempty"`
	SellTimeline   string `json:"sellTimeline,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	EstimatedRent  *float64 `json:"estimatedRent,omitempty"`

	// CRMContactID is the upstream id returned by the first successful CRM
	// call. Observability only: record linking happens by field matching.
	CRMContactID string `json:"crmContactId,omitempty"`
}

// SetField is the single mutation entry point for form-collected fields,
// keyed by field name. Enum fields reject codes outside their option set.
func (l *Lead) SetField(field, value string) error {
	value = strings.TrimSpace(value)

	switch field {
	case FieldAddress:
		l.Address = sanitize.Text(value)
	case FieldIsOwner:
		if !validOption(value, OwnerOptions) {
			return fmt.Errorf("invalid owner answer %q", value)
		}
		l.IsOwner = value
	case FieldMortgageStatus:
		if !validOption(value, MortgageOptions) {
			return fmt.Errorf("invalid mortgage answer %q", value)
		}
		l.MortgageStatus = value
	case FieldHomeCondition:
		if !validOption(value, ConditionOptions) {
			return fmt.Errorf("invalid condition answer %q", value)
		}
		l.HomeCondition = value
	case FieldSellTimeline:
		if !validOption(value, TimelineOptions) {
			return fmt.Errorf("invalid timeline answer %q", value)
		}
		l.SellTimeline = value
	case FieldFirstName:
		l.FirstName = sanitize.Text(value)
	case FieldLastName:
		l.LastName = sanitize.Text(value)
	case FieldPhone:
		l.Phone = value
	case FieldEmail:
		l.Email = value
	default:
		return fmt.Errorf("unknown lead field %q", field)
	}

	return nil
}

// AttachEstimate merges a valuation result into the lead. A nil value leaves
// the lead without an estimate, which routes the result step to its
// soft-failure screen.
func (l *Lead) AttachEstimate(value, rent *float64) {
	l.EstimatedValue = value
	l.EstimatedRent = rent
}

// HasEstimate reports whether the terminal result step may render a figure.
func (l *Lead) HasEstimate() bool {
	return l.EstimatedValue != nil
}

func validOption(value string, options []string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}
