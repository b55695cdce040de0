package model

import (
	"time"

	"agenda/infras/gateway"
)

const (
	EntityName = "appointment"

	EventTypeCreated     = "appointment.created"
	EventTypeUpdated     = "appointment.updated"
	EventTypeSlotDeleted = "appointment.slot_deleted"
)

// Appointment is one booked appointment as mirrored from the remote backend.
// Date carries the calendar day, Slots the booked time labels sorted ascending.
type Appointment struct {
	ID            string
	AccountID     string
	Date          time.Time
	Slots         []string
	ClientName    string
	Contact       string
	Whatsapp      bool
	ServiceTypeID string
	ServiceType   string
}

func FromGateway(in gateway.Appointment) Appointment {
	return Appointment{
		ID:            in.ID,
		AccountID:     in.AccountID,
		Date:          in.Date,
		Slots:         in.Slots,
		ClientName:    in.ClientName,
		Contact:       in.Contact,
		Whatsapp:      in.Whatsapp,
		ServiceTypeID: in.ServiceTypeID,
		ServiceType:   in.ServiceType,
	}
}

func FromGatewayList(in []gateway.Appointment) []Appointment {
	out := make([]Appointment, 0, len(in))
	for _, appointment := range in {
		out = append(out, FromGateway(appointment))
	}

	return out
}

// Event is published to the event stream after every successful write
// against the remote backend.
type Event struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	AccountID     string    `json:"account_id"`
	Date          time.Time `json:"date"`
	Slots         []string  `json:"slots"`
	OccurredAt    time.Time `json:"occurred_at"`
}
