package dto

import (
	"agenda/internal/domains/schedule/model"
)

type ScheduleResponse struct {
	OpeningTime     string   `json:"opening_time"`
	ClosingTime     string   `json:"closing_time"`
	IntervalMinutes int      `json:"interval_minutes"`
	Slots           []string `json:"slots"`
}

func (r *ScheduleResponse) FromModel(schedule model.Schedule) {
	r.OpeningTime = schedule.OpeningTime
	r.ClosingTime = schedule.ClosingTime
	r.IntervalMinutes = schedule.IntervalMinutes
	r.Slots = schedule.GenerateSlots()
}
