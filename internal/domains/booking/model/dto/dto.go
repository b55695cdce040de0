package dto

import (
	"agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	"agenda/shared/timezone"
)

type StartSessionRequest struct {
	Date string `json:"date" validate:"required"`
}

type EditSessionRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
}

type ToggleSlotRequest struct {
	Slot string `json:"slot" validate:"required,slot"`
}

type SubmitRequest struct {
	ClientName    string `json:"client_name" validate:"required,max=120"`
	Contact       string `json:"contact" validate:"required,max=60"`
	Whatsapp      bool   `json:"whatsapp"`
	ServiceTypeID string `json:"service_type_id"`
}

func (r SubmitRequest) ToDraft() model.Draft {
	return model.Draft{
		ClientName:    r.ClientName,
		Contact:       r.Contact,
		Whatsapp:      r.Whatsapp,
		ServiceTypeID: r.ServiceTypeID,
	}
}

type DraftResponse struct {
	ClientName    string `json:"client_name"`
	Contact       string `json:"contact"`
	Whatsapp      bool   `json:"whatsapp"`
	ServiceTypeID string `json:"service_type_id"`
}

type SessionResponse struct {
	ID        string        `json:"id"`
	State     string        `json:"state"`
	Date      string        `json:"date"`
	Offerable []string      `json:"offerable"`
	Selected  []string      `json:"selected"`
	Draft     DraftResponse `json:"draft"`
	EditingID string        `json:"editing_id,omitempty"`
}

func (r *SessionResponse) FromModel(session model.Session) {
	r.ID = session.ID
	r.State = string(session.State)
	r.Date = timezone.Format(session.Date, constant.DateFormat)
	r.Offerable = session.Offerable
	r.Selected = session.Selected
	r.Draft = DraftResponse{
		ClientName:    session.Draft.ClientName,
		Contact:       session.Draft.Contact,
		Whatsapp:      session.Draft.Whatsapp,
		ServiceTypeID: session.Draft.ServiceTypeID,
	}
	r.EditingID = session.EditingID
}

type SlotOutcomeResponse struct {
	Slot          string `json:"slot"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type SubmitResponse struct {
	Completed bool                  `json:"completed"`
	Outcomes  []SlotOutcomeResponse `json:"outcomes"`
	Session   *SessionResponse      `json:"session,omitempty"`
}

func (r *SubmitResponse) FromOutcomes(outcomes []model.SlotOutcome) {
	r.Outcomes = make([]SlotOutcomeResponse, 0, len(outcomes))

	for _, outcome := range outcomes {
		r.Outcomes = append(r.Outcomes, SlotOutcomeResponse(outcome))
	}
}
