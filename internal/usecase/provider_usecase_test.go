package usecase

import (
	"context"
	"errors"
	"testing"

	"appointment-booking-api/internal/delivery/dto"
)

func TestCreateProviderValidatesWorkingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.providers.CreateProvider(ctx, f.admin.ID, &dto.CreateProviderRequest{
		Name:         "Bad Hours Clinic",
		WorkingHours: map[string]string{"monday": "17:00-09:00"},
	})

	var whErr *WorkingHoursValidationError
	if !errors.As(err, &whErr) {
		t.Fatalf("expected WorkingHoursValidationError, got %v", err)
	}
	if _, ok := whErr.Fields["monday"]; !ok {
		t.Errorf("expected field error for monday, got %v", whErr.Fields)
	}
}

func TestCreateProviderNormalizesWeekdayCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.providers.CreateProvider(ctx, f.admin.ID, &dto.CreateProviderRequest{
		Name:         "Mixed Case Clinic",
		WorkingHours: map[string]string{"Monday": "09:00-17:00"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.providers.GetProvider(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.WorkingHours["monday"] != "09:00-17:00" {
		t.Errorf("working hours not normalized: %v", got.WorkingHours)
	}
}

func TestUpdateProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.providers.UpdateProvider(ctx, f.admin.ID, f.provider.ID, &dto.UpdateProviderRequest{
		Name:         "Dr. Smith (Mon only)",
		WorkingHours: map[string]string{"monday": "10:00-14:00"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Dr. Smith (Mon only)" {
		t.Errorf("name = %q", updated.Name)
	}
	if len(updated.WorkingHours) != 1 || updated.WorkingHours["monday"] != "10:00-14:00" {
		t.Errorf("working hours = %v", updated.WorkingHours)
	}

	// The new schedule governs bookings immediately: tuesday is now closed.
	_, err = f.bookings.CreateBooking(ctx, f.user.ID, &dto.CreateBookingRequest{
		ProviderID: f.provider.ID,
		ServiceID:  f.service.ID,
		Datetime:   "2027-03-02 11:00:00",
	})
	var closedErr *ClosedDayError
	if !errors.As(err, &closedErr) {
		t.Fatalf("expected ClosedDayError after schedule change, got %v", err)
	}
}

func TestUpdateUnknownProvider(t *testing.T) {
	f := newFixture(t)

	_, err := f.providers.UpdateProvider(context.Background(), f.admin.ID, 9999, &dto.UpdateProviderRequest{
		Name:         "Ghost",
		WorkingHours: map[string]string{"monday": "09:00-17:00"},
	})
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestCreateAndListServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.services.CreateService(ctx, f.admin.ID, &dto.CreateServiceRequest{
		Name:     "Deep Cleaning",
		Duration: 90,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Duration != 90 {
		t.Errorf("duration = %d", created.Duration)
	}

	list, err := f.services.GetAllServices(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// The fixture seeds one service already.
	if list.Total != 2 {
		t.Errorf("total = %d, want 2", list.Total)
	}
}
