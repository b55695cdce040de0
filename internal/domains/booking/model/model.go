package model

import (
	"time"

	"agenda/shared"
	"agenda/shared/failure"
)

const EntityName = "booking session"

// State is the phase a booking session is in. There is no stored idle state;
// an idle account simply has no session.
type State string

const (
	StateSelectingTimes State = "selecting_times"
	StateFillingDetails State = "filling_details"
	StateSubmitting     State = "submitting"
)

// Draft holds the client details entered so far. It survives a failed submit
// so the operator never retypes anything.
type Draft struct {
	ClientName    string `json:"client_name"`
	Contact       string `json:"contact"`
	Whatsapp      bool   `json:"whatsapp"`
	ServiceTypeID string `json:"service_type_id"`
}

// SlotOutcome reports what happened to one selected slot during a submit.
type SlotOutcome struct {
	Slot          string `json:"slot"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Session is one in-progress booking. Offerable is the free slot set captured
// when the session started; Selected stays sorted ascending at all times.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	State     State     `json:"state"`
	Date      time.Time `json:"date"`
	Offerable []string  `json:"offerable"`
	Selected  []string  `json:"selected"`
	Draft     Draft     `json:"draft"`
	EditingID string    `json:"editing_id,omitempty"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Toggle flips one slot in or out of the selection. Selecting an already
// selected slot deselects it, so repeated toggles are idempotent in pairs.
func (s *Session) Toggle(slot string) error {
	if s.State != StateSelectingTimes {
		return failure.Conflict("times can only be changed while selecting times") //nolint:wrapcheck
	}

	if shared.Contains(s.Selected, slot) {
		s.Selected = shared.Remove(s.Selected, slot)

		return nil
	}

	if !shared.Contains(s.Offerable, slot) {
		return failure.BadRequestFromString("slot is not available on this date") //nolint:wrapcheck
	}

	s.Selected = shared.SortedInsert(s.Selected, slot)

	return nil
}

// ConfirmTimes moves the session on to the details form. At least one slot
// must be selected.
func (s *Session) ConfirmTimes() error {
	if s.State != StateSelectingTimes {
		return failure.Conflict("session is not selecting times") //nolint:wrapcheck
	}

	if len(s.Selected) == 0 {
		return failure.BadRequestFromString("select at least one time before confirming") //nolint:wrapcheck
	}

	s.State = StateFillingDetails

	return nil
}

// Reselect returns from the details form to time selection. The draft is kept.
func (s *Session) Reselect() error {
	if s.State != StateFillingDetails {
		return failure.Conflict("session is not filling details") //nolint:wrapcheck
	}

	s.State = StateSelectingTimes

	return nil
}

// BeginSubmit locks the session while writes against the backend are in
// flight.
func (s *Session) BeginSubmit() error {
	if s.State == StateSubmitting {
		return failure.Conflict("a submit is already in progress") //nolint:wrapcheck
	}

	if s.State != StateFillingDetails {
		return failure.Conflict("confirm times and fill details before submitting") //nolint:wrapcheck
	}

	s.State = StateSubmitting

	return nil
}

// FailSubmit returns a session to the details form after a failed or partial
// submit, keeping only the slots that still need booking.
func (s *Session) FailSubmit(remaining []string) {
	s.State = StateFillingDetails
	s.Selected = remaining
}

// IsEdit reports whether this session reworks an existing appointment rather
// than creating new ones.
func (s *Session) IsEdit() bool {
	return s.EditingID != ""
}
