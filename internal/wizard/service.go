// Package wizard drives the multi-step estimator flow: one session per
// visitor, one step at a time, with CRM synchronization fired at the
// address and contact steps. CRM and valuation failures never block the
// visitor's progress; they are logged and published as events instead.
package wizard

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"homesale_backend/internal/crm"
	"homesale_backend/internal/events"
	"homesale_backend/internal/lead/domain"
	leadsvc "homesale_backend/internal/lead/service"
	"homesale_backend/internal/session"
	"homesale_backend/internal/valuation"
	"homesale_backend/platform/apperr"
	"homesale_backend/platform/logger"
)

const (
	msgAddressRequired = "Please enter your address"
	msgAnswerRequired  = "Please select an answer"
	msgNameRequired    = "Please enter your name"
	msgConsentRequired = "Please agree to the consent to continue"

	// Result bounds as fractions of the point estimate.
	lowBoundFactor  = 0.92
	highBoundFactor = 1.08
)

// LeadSyncer is the slice of the lead service the wizard consumes.
type LeadSyncer interface {
	Create(ctx context.Context, address string) (string, error)
	Complete(ctx context.Context, input leadsvc.CompleteInput) (leadsvc.Report, error)
}

// Valuer resolves an address to a home value estimate.
type Valuer interface {
	Lookup(ctx context.Context, address string) (*valuation.Estimate, error)
}

// Service sequences the wizard steps over a session store.
type Service struct {
	store  session.Store
	leads  LeadSyncer
	valuer Valuer
	bus    events.Bus
	log    *logger.Logger
}

func NewService(store session.Store, leads LeadSyncer, valuer Valuer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, leads: leads, valuer: valuer, bus: bus, log: log}
}

// AdvanceInput carries the form fields for the current step. Only the
// fields relevant to that step are read.
type AdvanceInput struct {
	Address   string
	Answer    string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Consent   bool
}

// StartSession opens a fresh session at the address step.
func (s *Service) StartSession(ctx context.Context) (*session.State, error) {
	return s.store.Create(ctx, string(StepAddress))
}

// GetSession loads a session by id.
func (s *Service) GetSession(ctx context.Context, id string) (*session.State, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return state, nil
}

// Advance applies the current step's input and moves the session forward.
// Validation errors keep the session on its current step. CRM failures do
// not: the visitor advances regardless and the failure is reported on the
// event bus.
func (s *Service) Advance(ctx context.Context, id string, input AdvanceInput) (*session.State, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	step, ok := ParseStep(state.Step)
	if !ok {
		return nil, apperr.Internal("corrupt session step")
	}

	switch step {
	case StepAddress:
		return s.advanceAddress(ctx, id, input)
	case StepOwner, StepMortgage, StepCondition:
		return s.advanceAnswer(ctx, id, step, input.Answer)
	case StepTimeline:
		return s.advanceTimeline(ctx, id, state, input.Answer)
	case StepContact:
		return s.advanceContact(ctx, id, state, input)
	default:
		return nil, apperr.BadRequest("The flow is already complete")
	}
}

// Back moves the session one step toward the start. Answers already given
// are kept so the visitor can revise them.
func (s *Service) Back(ctx context.Context, id string) (*session.State, error) {
	state, err := s.store.Update(ctx, id, func(st *session.State) error {
		step, ok := ParseStep(st.Step)
		if !ok {
			return apperr.Internal("corrupt session step")
		}
		if prev, ok := step.Prev(); ok {
			st.Step = string(prev)
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return state, nil
}

// ResultView is the terminal screen's payload. When no estimate could be
// obtained, Available is false and every figure is omitted.
type ResultView struct {
	Available      bool              `json:"available"`
	Address        string            `json:"address,omitempty"`
	EstimatedValue float64           `json:"estimatedValue,omitempty"`
	LowEstimate    float64           `json:"lowEstimate,omitempty"`
	HighEstimate   float64           `json:"highEstimate,omitempty"`
	RentValue      *float64          `json:"rentValue,omitempty"`
	Answers        map[string]string `json:"answers,omitempty"`
}

// Result renders the terminal step. Without an estimate it returns the
// soft-failure view and rewinds the session to the address step so the
// visitor can try another address.
func (s *Service) Result(ctx context.Context, id string) (*ResultView, error) {
	state, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if !state.Lead.HasEstimate() {
		if _, err := s.store.Update(ctx, id, func(st *session.State) error {
			st.Step = string(StepAddress)
			return nil
		}); err != nil {
			s.log.Error("session rewind failed", "session_id", id, "error", err)
		}
		return &ResultView{Available: false}, nil
	}

	value := *state.Lead.EstimatedValue
	return &ResultView{
		Available:      true,
		Address:        state.Lead.Address,
		EstimatedValue: value,
		LowEstimate:    math.Round(value * lowBoundFactor),
		HighEstimate:   math.Round(value * highBoundFactor),
		RentValue:      state.Lead.EstimatedRent,
		Answers: map[string]string{
			domain.FieldIsOwner:        state.Lead.IsOwner,
			domain.FieldMortgageStatus: state.Lead.MortgageStatus,
			domain.FieldHomeCondition:  state.Lead.HomeCondition,
			domain.FieldSellTimeline:   state.Lead.SellTimeline,
		},
	}, nil
}

func (s *Service) advanceAddress(ctx context.Context, id string, input AdvanceInput) (*session.State, error) {
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, apperr.Validation(msgAddressRequired)
	}

	// Push the partial lead before mutating the session, so a store failure
	// never leaves an un-synced address behind. The CRM call itself is
	// best-effort: any failure is swallowed and the visitor moves on.
	contactID, syncErr := s.leads.Create(ctx, address)

	state, err := s.store.Update(ctx, id, func(st *session.State) error {
		if err := st.Lead.SetField(domain.FieldAddress, address); err != nil {
			return err
		}
		if syncErr == nil {
			st.Lead.CRMContactID = contactID
			st.SyncState = st.SyncState.Advance(domain.SyncPartial)
		}
		st.Step = string(StepOwner)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if syncErr != nil {
		s.publishSyncFailure(ctx, id, "create", "create", syncErr)
	} else {
		s.bus.Publish(ctx, events.LeadCaptured{
			BaseEvent: events.NewBaseEvent(),
			SessionID: id,
			Address:   address,
			ContactID: contactID,
		})
	}

	return state, nil
}

func (s *Service) advanceAnswer(ctx context.Context, id string, step Step, answer string) (*session.State, error) {
	if answer == "" {
		return nil, apperr.Validation(msgAnswerRequired)
	}

	state, err := s.store.Update(ctx, id, func(st *session.State) error {
		if err := st.Lead.SetField(answerField[step], answer); err != nil {
			return apperr.Validation(err.Error())
		}
		next, _ := step.Next()
		st.Step = string(next)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return state, nil
}

func (s *Service) advanceTimeline(ctx context.Context, id string, state *session.State, answer string) (*session.State, error) {
	if answer == "" {
		return nil, apperr.Validation(msgAnswerRequired)
	}
	if err := state.Lead.SetField(domain.FieldSellTimeline, answer); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	// Last question answered: fetch the valuation now so the contact step
	// already knows whether a figure exists. Lookup failures degrade to the
	// no-estimate path instead of blocking the flow.
	estimate, err := s.valuer.Lookup(ctx, state.Lead.Address)
	if err != nil {
		s.log.Error("valuation lookup failed", "session_id", id, "error", err)
		estimate = nil
	}

	updated, err := s.store.Update(ctx, id, func(st *session.State) error {
		if err := st.Lead.SetField(domain.FieldSellTimeline, answer); err != nil {
			return apperr.Validation(err.Error())
		}
		if estimate != nil {
			st.Lead.AttachEstimate(&estimate.Value, estimate.RentValue)
		}
		st.Step = string(StepContact)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if estimate != nil {
		s.bus.Publish(ctx, events.ValuationAttached{
			BaseEvent:      events.NewBaseEvent(),
			SessionID:      id,
			Address:        updated.Lead.Address,
			EstimatedValue: estimate.Value,
		})
	}

	return updated, nil
}

func (s *Service) advanceContact(ctx context.Context, id string, state *session.State, input AdvanceInput) (*session.State, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, apperr.Validation(msgNameRequired)
	}
	if !input.Consent {
		return nil, apperr.Validation(msgConsentRequired)
	}

	complete := leadsvc.CompleteInput{
		Address:   state.Lead.Address,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}
	if state.Lead.EstimatedValue != nil {
		complete.EstimatedValue = strconv.FormatFloat(*state.Lead.EstimatedValue, 'f', 0, 64)
	}

	// Whatever the CRM does, the visitor reaches the result screen.
	report, syncErr := s.leads.Complete(ctx, complete)

	updated, err := s.store.Update(ctx, id, func(st *session.State) error {
		for field, value := range map[string]string{
			domain.FieldFirstName: input.FirstName,
			domain.FieldLastName:  input.LastName,
			domain.FieldPhone:     input.Phone,
			domain.FieldEmail:     input.Email,
		} {
			if err := st.Lead.SetField(field, value); err != nil {
				return err
			}
		}
		if syncErr == nil {
			st.SyncState = st.SyncState.Advance(report.State)
		}
		st.Step = string(StepResult)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.publishCompletion(ctx, id, updated, report, syncErr)

	return updated, nil
}

func (s *Service) publishCompletion(ctx context.Context, id string, state *session.State, report leadsvc.Report, syncErr error) {
	if syncErr != nil {
		s.publishSyncFailure(ctx, id, "complete", "link", syncErr)
		return
	}
	if report.Link.Err != nil {
		s.publishSyncFailure(ctx, id, "complete", "link", report.Link.Err)
	}
	if report.Rekey.Err != nil {
		s.publishSyncFailure(ctx, id, "complete", "rekey", report.Rekey.Err)
	}
	if report.Succeeded() {
		s.bus.Publish(ctx, events.LeadCompleted{
			BaseEvent:     events.NewBaseEvent(),
			SessionID:     id,
			Address:       state.Lead.Address,
			HasPhone:      state.Lead.Phone != "",
			HasEmail:      state.Lead.Email != "",
			EmailVerified: report.State == domain.SyncCompleteVerifiedEmail,
		})
	}
}

func (s *Service) publishSyncFailure(ctx context.Context, id, action, step string, err error) {
	failure := events.CrmSyncFailed{
		BaseEvent: events.NewBaseEvent(),
		SessionID: id,
		Action:    action,
		Step:      step,
		Reason:    err.Error(),
	}
	var reqErr *crm.RequestError
	if errors.As(err, &reqErr) {
		failure.Status = reqErr.Status
		failure.Body = reqErr.Body
	}
	s.bus.Publish(ctx, failure)
}

func mapStoreErr(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return apperr.NotFound("Session not found")
	}
	return err
}
