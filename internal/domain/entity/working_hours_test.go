package entity

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		schedule  WeeklySchedule
		wantField string
	}{
		{
			name:     "valid full week",
			schedule: WeeklySchedule{"monday": "09:00-17:00", "tuesday": "08:30-12:00", "sunday": ""},
		},
		{
			name:      "unknown weekday",
			schedule:  WeeklySchedule{"funday": "09:00-17:00"},
			wantField: "funday",
		},
		{
			name:      "bad format",
			schedule:  WeeklySchedule{"monday": "9am-5pm"},
			wantField: "monday",
		},
		{
			name:      "invalid time of day",
			schedule:  WeeklySchedule{"monday": "09:00-25:00"},
			wantField: "monday",
		},
		{
			name:      "open after close",
			schedule:  WeeklySchedule{"monday": "17:00-09:00"},
			wantField: "monday",
		},
		{
			name:      "open equals close",
			schedule:  WeeklySchedule{"monday": "09:00-09:00"},
			wantField: "monday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.schedule.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid schedule, got errors %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("expected error on field %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestIsOpenOn(t *testing.T) {
	ws := WeeklySchedule{"monday": "09:00-17:00", "tuesday": ""}

	if !ws.IsOpenOn(time.Monday) {
		t.Error("expected monday open")
	}
	if ws.IsOpenOn(time.Tuesday) {
		t.Error("expected tuesday closed: empty interval")
	}
	if ws.IsOpenOn(time.Wednesday) {
		t.Error("expected wednesday closed: absent")
	}
}

func TestIntervalFor(t *testing.T) {
	ws := WeeklySchedule{"monday": "09:30-17:00", "friday": "garbage"}

	interval, ok := ws.IntervalFor(time.Monday)
	if !ok {
		t.Fatal("expected monday interval")
	}
	if interval.Open != 9*60+30 || interval.Close != 17*60 {
		t.Errorf("unexpected interval %+v", interval)
	}
	if got := interval.String(); got != "09:30-17:00" {
		t.Errorf("String() = %q, want 09:30-17:00", got)
	}

	if _, ok := ws.IntervalFor(time.Friday); ok {
		t.Error("expected malformed friday interval to be rejected")
	}
	if _, ok := ws.IntervalFor(time.Sunday); ok {
		t.Error("expected absent sunday interval to be rejected")
	}
}

func TestIntervalAnchoring(t *testing.T) {
	ws := WeeklySchedule{"wednesday": "08:15-16:45"}
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local) // a wednesday

	interval, ok := ws.IntervalFor(day.Weekday())
	if !ok {
		t.Fatal("expected interval")
	}

	open := interval.OpenOn(day)
	if open.Hour() != 8 || open.Minute() != 15 {
		t.Errorf("OpenOn = %v, want 08:15", open)
	}
	close := interval.CloseOn(day)
	if close.Hour() != 16 || close.Minute() != 45 {
		t.Errorf("CloseOn = %v, want 16:45", close)
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	ws := WeeklySchedule{"Monday": "09:00-17:00", "TUESDAY": "10:00-12:00"}.Normalize()

	if !ws.IsOpenOn(time.Monday) || !ws.IsOpenOn(time.Tuesday) {
		t.Errorf("expected normalized schedule to resolve mixed-case keys, got %v", ws)
	}
}
