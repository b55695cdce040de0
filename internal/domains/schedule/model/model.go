package model

import (
	"time"

	"agenda/infras/gateway"
	"agenda/shared/constant"
	"agenda/shared/timezone"
)

const EntityName = "schedule"

// Schedule is the configured working hours of an account. Opening and closing
// times are zero-padded "HH:MM" labels.
type Schedule struct {
	AccountID       string
	OpeningTime     string
	ClosingTime     string
	IntervalMinutes int
}

func FromGateway(in gateway.Schedule) Schedule {
	return Schedule{
		AccountID:       in.AccountID,
		OpeningTime:     in.OpeningTime,
		ClosingTime:     in.ClosingTime,
		IntervalMinutes: in.IntervalMinutes,
	}
}

// GenerateSlots expands the working hours into the offerable slot labels,
// stepping by the configured interval from opening time up to but not
// including closing time. A malformed schedule yields no slots.
func (s Schedule) GenerateSlots() []string {
	if s.IntervalMinutes <= 0 {
		return []string{}
	}

	opening, err := timezone.Parse(constant.SlotFormat, s.OpeningTime)
	if err != nil {
		return []string{}
	}

	closing, err := timezone.Parse(constant.SlotFormat, s.ClosingTime)
	if err != nil || !opening.Before(closing) {
		return []string{}
	}

	slots := []string{}

	for t := opening; t.Before(closing); t = t.Add(time.Duration(s.IntervalMinutes) * time.Minute) {
		slots = append(slots, t.Format(constant.SlotFormat))
	}

	return slots
}
