package model

import (
	"testing"
	"time"
)

func TestPeriodKeyFor_TimezoneStability(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	newYork := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		date time.Time
		name string
		want string
	}{
		{name: "utc midnight", date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), want: "2024-01"},
		{name: "utc end of month", date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), want: "2024-01"},
		{name: "late evening east of utc", date: time.Date(2024, 1, 31, 23, 45, 0, 0, jakarta), want: "2024-01"},
		{name: "late evening west of utc", date: time.Date(2024, 1, 1, 0, 15, 0, 0, newYork), want: "2024-01"},
		{name: "leap day", date: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), want: "2024-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodKeyFor(tt.date).String(); got != tt.want {
				t.Errorf("PeriodKeyFor(%v) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestPeriodKey_Next(t *testing.T) {
	k := PeriodKey{Year: 2024, Month: time.November}
	if got := k.Next().String(); got != "2024-12" {
		t.Errorf("Next() = %s, want 2024-12", got)
	}
	if got := k.Next().Next().String(); got != "2025-01" {
		t.Errorf("Next().Next() = %s, want 2025-01", got)
	}
}

func TestPeriodKey_Parse(t *testing.T) {
	k, err := ParsePeriodKey("2024-07")
	if err != nil {
		t.Fatalf("ParsePeriodKey: %v", err)
	}
	if k.Year != 2024 || k.Month != time.July {
		t.Errorf("ParsePeriodKey = %+v", k)
	}
	if _, err := ParsePeriodKey("202407"); err == nil {
		t.Error("ParsePeriodKey accepted malformed input")
	}
}

func TestPeriodKey_StartEnd(t *testing.T) {
	k := PeriodKey{Year: 2024, Month: time.February}
	if got := k.Start(); !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() = %v", got)
	}
	// 2024 is a leap year.
	if got := k.End(); !got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End() = %v", got)
	}
}

func TestDateRange_Contains(t *testing.T) {
	window := MonthRange(2024, time.January)

	tests := []struct {
		date time.Time
		name string
		want bool
	}{
		{name: "first day", date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day", date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), want: true},
		{name: "mid month with time of day", date: time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC), want: true},
		{name: "day before", date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), want: false},
		{name: "day after", date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.date); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestYearRange(t *testing.T) {
	r := YearRange(2024)
	if !r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", r.Start)
	}
	if !r.End.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", r.End)
	}
}
