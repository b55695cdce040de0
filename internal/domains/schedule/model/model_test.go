package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agenda/internal/domains/schedule/model"
)

func TestSchedule_GenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		schedule model.Schedule
		want     []string
	}{
		{
			name: "half hour steps across a morning",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "12:00",
				IntervalMinutes: 30,
			},
			want: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "closing time itself is not offered",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "10:00",
				IntervalMinutes: 60,
			},
			want: []string{"09:00"},
		},
		{
			name: "interval that overshoots the closing time",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "10:30",
				IntervalMinutes: 45,
			},
			want: []string{"09:00", "09:45"},
		},
		{
			name: "zero interval yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "12:00",
				IntervalMinutes: 0,
			},
			want: []string{},
		},
		{
			name: "negative interval yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "12:00",
				IntervalMinutes: -30,
			},
			want: []string{},
		},
		{
			name: "malformed opening time yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "9am",
				ClosingTime:     "12:00",
				IntervalMinutes: 30,
			},
			want: []string{},
		},
		{
			name: "malformed closing time yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "noon",
				IntervalMinutes: 30,
			},
			want: []string{},
		},
		{
			name: "closing before opening yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "12:00",
				ClosingTime:     "09:00",
				IntervalMinutes: 30,
			},
			want: []string{},
		},
		{
			name: "opening equal to closing yields nothing",
			schedule: model.Schedule{
				OpeningTime:     "09:00",
				ClosingTime:     "09:00",
				IntervalMinutes: 30,
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.GenerateSlots())
		})
	}
}
