// Package service implements the lead identity and CRM synchronization
// protocol: a best-effort correspondence between one real-world lead and one
// CRM contact record, built on nothing but the upstream's
// upsert-by-matching-field primitive.
//
// Before contact info exists, the record is keyed by a placeholder email
// derived from the address (see the identity package). Completion then takes
// up to two sequential upserts: Step A locates the placeholder record by that
// email and enriches it; Step B, only when a verified phone and email are
// both known, re-keys the record by phone and replaces the placeholder email
// with the real one. No single upsert can both match on a field and change
// that same field, which is why the two calls cannot be merged.
package service

import (
	"context"
	"errors"
	"strings"

	"homesale_backend/internal/crm"
	"homesale_backend/internal/lead/domain"
	"homesale_backend/internal/lead/identity"
	"homesale_backend/platform/apperr"
	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
	"homesale_backend/platform/phone"
	"homesale_backend/platform/validator"
)

const (
	placeholderFirstName = "Lead"
	placeholderLastName  = "HomeSaleCalculator"

	tagCalculator   = "Home Sale Calculator"
	tagPartialLead  = "partial-lead"
	tagLeadComplete = "lead-complete"

	zestimateFieldKey = "home_sale_calculator_zestimate"

	msgAddressRequired   = "Address is required"
	msgFirstNameRequired = "First name required"
	msgConfigError       = "Server configuration error"
)

// Upserter is the single CRM operation this service consumes.
type Upserter interface {
	Upsert(ctx context.Context, req crm.UpsertRequest) (*crm.UpsertResult, error)
}

// Service translates lead lifecycle events into CRM upsert calls.
type Service struct {
	crm Upserter
	cfg config.CRMConfig
	val *validator.Validator
	log *logger.Logger
}

// New creates the sync service.
func New(upserter Upserter, cfg config.CRMConfig, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{crm: upserter, cfg: cfg, val: val, log: log}
}

// CompleteInput carries everything the completion event needs. Phone and
// Email may be empty; EstimatedValue is the formatted valuation figure for
// the custom field, empty when no estimate was obtained.
type CompleteInput struct {
	Address        string
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	EstimatedValue string
}

// StepOutcome records one upsert attempt within Complete.
type StepOutcome struct {
	Attempted bool
	ContactID string
	Err       error
}

// Report is the outcome of a Complete call. Step failures are independent:
// a Rekey failure never rolls back Link, and callers are expected to treat
// the whole report as non-blocking for the user journey.
type Report struct {
	Link  StepOutcome // Step A: locate by placeholder email, enrich
	Rekey StepOutcome // Step B: locate by phone, set the real email
	State domain.SyncState
}

// Succeeded reports owner-flow success: Step A landed, whatever Step B did.
func (r Report) Succeeded() bool {
	return r.Link.Attempted && r.Link.Err == nil
}

// Create registers a partial lead right after the address step. The match
// key is the address-derived placeholder email, so calling Create twice for
// the same normalized address upserts the same record instead of creating a
// duplicate. Returns the CRM-assigned contact id (best-effort; later calls
// correlate by field match, not by this id).
func (s *Service) Create(ctx context.Context, address string) (string, error) {
	if !s.cfg.IsCRMConfigured() {
		return "", apperr.Configuration(msgConfigError)
	}
	if strings.TrimSpace(address) == "" {
		return "", apperr.Validation(msgAddressRequired)
	}

	result, err := s.crm.Upsert(ctx, crm.UpsertRequest{
		FirstName: placeholderFirstName,
		LastName:  placeholderLastName,
		Email:     identity.PlaceholderEmail(address),
		Address1:  address,
		Tags:      []string{tagCalculator, tagPartialLead},
	})
	if err != nil {
		s.logFailure("create", "create", err)
		return "", err
	}

	s.log.Info("partial lead upserted", "contact_id", result.ID)
	return result.ID, nil
}

// Complete pushes the full lead at the contact step. Validation failures
// (missing address, missing first name) return an error before any CRM call.
// Step A always runs; Step B runs only when a verified phone and email are
// both present, and always after Step A.
func (s *Service) Complete(ctx context.Context, input CompleteInput) (Report, error) {
	if !s.cfg.IsCRMConfigured() {
		return Report{}, apperr.Configuration(msgConfigError)
	}
	if strings.TrimSpace(input.Address) == "" {
		return Report{}, apperr.Validation(msgAddressRequired)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return Report{}, apperr.Validation(msgFirstNameRequired)
	}

	report := Report{State: domain.SyncNoRecord}

	verifiedPhone := ""
	if strings.TrimSpace(input.Phone) != "" {
		verifiedPhone = phone.NormalizeE164(input.Phone)
	}
	// A malformed email never becomes the record's new match key.
	verifiedEmail := strings.TrimSpace(input.Email)
	if verifiedEmail != "" && s.val.Var(verifiedEmail, "email") != nil {
		verifiedEmail = ""
	}

	// Step A: locate the record created at the address step via the same
	// placeholder email, and enrich it with everything now known.
	linkReq := crm.UpsertRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     identity.PlaceholderEmail(input.Address),
		Phone:     verifiedPhone,
		Address1:  input.Address,
		Tags:      []string{tagCalculator, tagLeadComplete},
	}
	if input.EstimatedValue != "" {
		linkReq.CustomFields = []crm.CustomField{
			{Key: zestimateFieldKey, FieldValue: input.EstimatedValue},
		}
	}

	report.Link.Attempted = true
	if result, err := s.crm.Upsert(ctx, linkReq); err != nil {
		report.Link.Err = err
		s.logFailure("complete", "link", err)
	} else {
		report.Link.ContactID = result.ID
		report.State = domain.SyncComplete
	}

	// Step B: re-key by phone and replace the placeholder with the real
	// email. Skipped entirely unless both verified fields exist; never
	// attempted with an empty phone.
	if verifiedPhone != "" && verifiedEmail != "" {
		report.Rekey.Attempted = true
		if result, err := s.crm.Upsert(ctx, crm.UpsertRequest{
			Phone: verifiedPhone,
			Email: verifiedEmail,
		}); err != nil {
			report.Rekey.Err = err
			s.logFailure("complete", "rekey", err)
		} else {
			report.Rekey.ContactID = result.ID
			report.State = report.State.Advance(domain.SyncCompleteVerifiedEmail)
		}
	}

	return report, nil
}

func (s *Service) logFailure(action, step string, err error) {
	var reqErr *crm.RequestError
	if errors.As(err, &reqErr) {
		s.log.CRMSyncFailure(action, step, reqErr.Status, reqErr.Body, nil)
		return
	}
	s.log.CRMSyncFailure(action, step, 0, "", err)
}
