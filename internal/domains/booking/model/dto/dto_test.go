package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/shared/constant"
	"agenda/shared/timezone"
)

func TestSubmitRequest_ToDraft(t *testing.T) {
	req := dto.SubmitRequest{
		ClientName:    "Maria",
		Contact:       "11 99999-0000",
		Whatsapp:      true,
		ServiceTypeID: "st-1",
	}

	draft := req.ToDraft()

	assert.Equal(t, "Maria", draft.ClientName)
	assert.Equal(t, "11 99999-0000", draft.Contact)
	assert.True(t, draft.Whatsapp)
	assert.Equal(t, "st-1", draft.ServiceTypeID)
}

func TestSessionResponse_FromModel(t *testing.T) {
	day, _ := timezone.Parse(constant.DateFormat, "2025-03-10")

	session := model.Session{
		ID:        "session-id",
		AccountID: "account-1",
		State:     model.StateFillingDetails,
		Date:      day,
		Offerable: []string{"09:00", "09:30"},
		Selected:  []string{"09:00"},
		Draft: model.Draft{
			ClientName: "Maria",
			Contact:    "11 99999-0000",
		},
		EditingID: "apt-1",
	}

	var res dto.SessionResponse
	res.FromModel(session)

	assert.Equal(t, "session-id", res.ID)
	assert.Equal(t, "filling_details", res.State)
	assert.Equal(t, "2025-03-10", res.Date)
	assert.Equal(t, []string{"09:00", "09:30"}, res.Offerable)
	assert.Equal(t, []string{"09:00"}, res.Selected)
	assert.Equal(t, "Maria", res.Draft.ClientName)
	assert.Equal(t, "apt-1", res.EditingID)
}

func TestSubmitResponse_FromOutcomes(t *testing.T) {
	var res dto.SubmitResponse
	res.FromOutcomes([]model.SlotOutcome{
		{Slot: "09:00", AppointmentID: "apt-1"},
		{Slot: "09:30", Error: "slot already booked"},
	})

	assert.Len(t, res.Outcomes, 2)
	assert.Equal(t, "apt-1", res.Outcomes[0].AppointmentID)
	assert.Empty(t, res.Outcomes[0].Error)
	assert.Equal(t, "slot already booked", res.Outcomes[1].Error)
}
