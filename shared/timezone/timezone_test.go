package timezone_test

import (
	"testing"
	"time"

	"agenda/shared/constant"
	"agenda/shared/timezone"
)

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(constant.DateFormat, "2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := timezone.Format(parsed, constant.DateFormat); got != "2025-03-10" {
		t.Errorf("expected 2025-03-10, got %s", got)
	}

	if _, err := timezone.Parse(constant.DateFormat, "10/03/2025"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestParseSlotLabels(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "09:00", wantErr: false},
		{input: "23:30", wantErr: false},
		{input: "9:00", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := timezone.Parse(constant.SlotFormat, tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.input, err)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	day, err := timezone.Parse(constant.DateFormat, "2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected bool
	}{
		{
			name:     "same instant",
			a:        day,
			b:        day,
			expected: true,
		},
		{
			name:     "different times on the same day",
			a:        day.Add(9 * time.Hour),
			b:        day.Add(23*time.Hour + 59*time.Minute),
			expected: true,
		},
		{
			name:     "midnight boundary",
			a:        day.Add(23*time.Hour + 59*time.Minute),
			b:        day.Add(24 * time.Hour),
			expected: false,
		},
		{
			name:     "consecutive days",
			a:        day,
			b:        day.AddDate(0, 0, 1),
			expected: false,
		},
		{
			name:     "same day number in different years",
			a:        day,
			b:        day.AddDate(1, 0, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.SameDay(tt.a, tt.b); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNowUsesAppLocation(t *testing.T) {
	now := timezone.Now()

	if now.Location().String() != timezone.GetLocation().String() {
		t.Errorf("expected location %s, got %s", timezone.GetLocation(), now.Location())
	}
}
