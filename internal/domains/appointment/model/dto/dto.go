package dto

import (
	"sort"

	"agenda/internal/domains/appointment/model"
	"agenda/shared/constant"
	"agenda/shared/timezone"
)

type AppointmentResponse struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Slots         []string `json:"slots"`
	ClientName    string   `json:"client_name"`
	Contact       string   `json:"contact"`
	Whatsapp      bool     `json:"whatsapp"`
	ServiceTypeID string   `json:"service_type_id"`
	ServiceType   string   `json:"service_type"`
}

func (r *AppointmentResponse) FromModel(appointment model.Appointment) {
	r.ID = appointment.ID
	r.Date = timezone.Format(appointment.Date, constant.DateFormat)
	r.Slots = appointment.Slots
	r.ClientName = appointment.ClientName
	r.Contact = appointment.Contact
	r.Whatsapp = appointment.Whatsapp
	r.ServiceTypeID = appointment.ServiceTypeID
	r.ServiceType = appointment.ServiceType
}

type ListAppointmentsResponse struct {
	Data      []AppointmentResponse `json:"data"`
	TotalData int                   `json:"total_data"`
}

func (r *ListAppointmentsResponse) FromModels(appointments []model.Appointment) {
	r.Data = make([]AppointmentResponse, 0, len(appointments))

	for _, appointment := range appointments {
		var res AppointmentResponse
		res.FromModel(appointment)

		r.Data = append(r.Data, res)
	}

	r.TotalData = len(r.Data)
}

// DayViewRow is one booked slot on the day view. Appointments holding several
// slots expand into one row per slot so the dashboard lists them individually.
type DayViewRow struct {
	AppointmentID string `json:"appointment_id"`
	Slot          string `json:"slot"`
	ClientName    string `json:"client_name"`
	Contact       string `json:"contact"`
	Whatsapp      bool   `json:"whatsapp"`
	ServiceType   string `json:"service_type"`
}

type DayViewResponse struct {
	Date string       `json:"date"`
	Rows []DayViewRow `json:"rows"`
}

func (r *DayViewResponse) FromModels(date string, appointments []model.Appointment) {
	r.Date = date
	r.Rows = make([]DayViewRow, 0, len(appointments))

	for _, appointment := range appointments {
		for _, slot := range appointment.Slots {
			r.Rows = append(r.Rows, DayViewRow{
				AppointmentID: appointment.ID,
				Slot:          slot,
				ClientName:    appointment.ClientName,
				Contact:       appointment.Contact,
				Whatsapp:      appointment.Whatsapp,
				ServiceType:   appointment.ServiceType,
			})
		}
	}

	sort.Slice(r.Rows, func(i, j int) bool {
		return r.Rows[i].Slot < r.Rows[j].Slot
	})
}

type AvailabilityResponse struct {
	Date      string   `json:"date"`
	Offerable []string `json:"offerable"`
	Booked    []string `json:"booked"`
	Free      []string `json:"free"`
}
