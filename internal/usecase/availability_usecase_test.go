package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"appointment-booking-api/internal/domain/entity"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func TestSlotsForDayEnumeration(t *testing.T) {
	schedule := entity.WeeklySchedule{"monday": "09:00-17:00"}
	monday := day(t, "2027-03-01")

	slots := slotsForDay(schedule, 60, monday, nil)

	// Half-hour marks from 09:00; the last start that still fits a 60-minute
	// service before 17:00 is 16:00.
	if len(slots) != 15 {
		t.Fatalf("len(slots) = %d, want 15", len(slots))
	}
	if slots[0] != "2027-03-01 09:00:00" {
		t.Errorf("first slot = %q", slots[0])
	}
	if slots[len(slots)-1] != "2027-03-01 16:00:00" {
		t.Errorf("last slot = %q", slots[len(slots)-1])
	}

	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly ascending at %d: %q <= %q", i, slots[i], slots[i-1])
		}
	}
}

func TestSlotsForDayStepIsFixedNotDurationBased(t *testing.T) {
	schedule := entity.WeeklySchedule{"monday": "09:00-12:00"}
	monday := day(t, "2027-03-01")

	// A 45-minute service still starts on 30-minute marks.
	slots := slotsForDay(schedule, 45, monday, nil)

	want := []string{
		"2027-03-01 09:00:00",
		"2027-03-01 09:30:00",
		"2027-03-01 10:00:00",
		"2027-03-01 10:30:00",
		"2027-03-01 11:00:00",
	}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot[%d] = %q, want %q", i, slots[i], want[i])
		}
	}
}

func TestSlotsForDaySkipsBookedKeys(t *testing.T) {
	schedule := entity.WeeklySchedule{"monday": "09:00-11:00"}
	monday := day(t, "2027-03-01")

	booked := map[string]struct{}{
		"2027-03-01 09:30:00": {},
	}

	slots := slotsForDay(schedule, 30, monday, booked)

	for _, s := range slots {
		if s == "2027-03-01 09:30:00" {
			t.Fatal("booked slot leaked into output")
		}
	}
	if len(slots) != 3 {
		t.Errorf("len(slots) = %d, want 3 (09:00, 10:00, 10:30)", len(slots))
	}
}

func TestSlotsForDayClosedOrMalformedDay(t *testing.T) {
	monday := day(t, "2027-03-01")

	if slots := slotsForDay(entity.WeeklySchedule{}, 30, monday, nil); len(slots) != 0 {
		t.Errorf("closed day produced slots: %v", slots)
	}
	if slots := slotsForDay(entity.WeeklySchedule{"monday": ""}, 30, monday, nil); len(slots) != 0 {
		t.Errorf("empty interval produced slots: %v", slots)
	}
	if slots := slotsForDay(entity.WeeklySchedule{"monday": "bananas"}, 30, monday, nil); len(slots) != 0 {
		t.Errorf("malformed interval produced slots: %v", slots)
	}
}

func TestSlotsForDayServiceLongerThanWindow(t *testing.T) {
	schedule := entity.WeeklySchedule{"monday": "09:00-10:00"}
	monday := day(t, "2027-03-01")

	if slots := slotsForDay(schedule, 90, monday, nil); len(slots) != 0 {
		t.Errorf("oversized service produced slots: %v", slots)
	}
}

func TestGenerateAvailableSlots(t *testing.T) {
	f := newFixture(t)

	slots, err := f.availability.GenerateAvailableSlots(context.Background(), f.provider.ID, f.service.ID, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Full-week 09:00-17:00 schedule, 60-minute service: 15 starts per day.
	if len(slots) != 30 {
		t.Fatalf("len(slots) = %d, want 30", len(slots))
	}

	today := time.Now().Format("2006-01-02")
	if slots[0] != today+" 09:00:00" {
		t.Errorf("first slot = %q, want today 09:00:00", slots[0])
	}

	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly ascending at %d", i)
		}
	}
}

func TestGenerateAvailableSlotsExcludesConfirmedBookings(t *testing.T) {
	f := newFixture(t)

	target := time.Now().Format("2006-01-02") + " 10:00:00"

	booking := f.createBooking(t, f.user.ID, target)

	slots, err := f.availability.GenerateAvailableSlots(context.Background(), f.provider.ID, f.service.ID, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(slots) != 14 {
		t.Fatalf("len(slots) = %d, want 14 with one slot booked", len(slots))
	}
	for _, s := range slots {
		if s == target {
			t.Fatal("booked slot still listed as available")
		}
	}

	// Cancelling puts the slot back.
	if err := f.bookings.CancelBooking(context.Background(), booking.ID, f.user.ID, false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	slots, err = f.availability.GenerateAvailableSlots(context.Background(), f.provider.ID, f.service.ID, 1)
	if err != nil {
		t.Fatalf("generate after cancel failed: %v", err)
	}
	if len(slots) != 15 {
		t.Fatalf("len(slots) = %d, want 15 after cancel", len(slots))
	}
}

func TestGenerateAvailableSlotsUnknownReferences(t *testing.T) {
	f := newFixture(t)

	if _, err := f.availability.GenerateAvailableSlots(context.Background(), 9999, f.service.ID, 1); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}
	if _, err := f.availability.GenerateAvailableSlots(context.Background(), f.provider.ID, 9999, 1); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestGenerateAvailableSlotsEmptyIsNotNil(t *testing.T) {
	f := newFixture(t)

	closed := f.seedProvider(t, "Never Open", entity.WeeklySchedule{})

	slots, err := f.availability.GenerateAvailableSlots(context.Background(), closed.ID, f.service.ID, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if slots == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Errorf("closed provider produced slots: %v", slots)
	}
}
