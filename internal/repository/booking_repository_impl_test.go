package repository

import (
	"testing"
	"time"

	"appointment-booking-api/internal/domain/entity"
	domainRepo "appointment-booking-api/internal/domain/repository"
	"appointment-booking-api/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema,
// including the partial unique index on confirmed bookings. A single
// connection keeps concurrent writers serialized the way the index expects.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{RoleID: entity.RoleIDUser, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProvider(t *testing.T, db *gorm.DB, name string, hours entity.WeeklySchedule) *entity.Provider {
	t.Helper()
	provider := &entity.Provider{Name: name, WorkingHours: hours.Normalize()}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("failed to seed provider: %v", err)
	}
	return provider
}

func seedService(t *testing.T, db *gorm.DB, name string, duration int) *entity.Service {
	t.Helper()
	service := &entity.Service{Name: name, Duration: duration}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	return service
}

func fullWeek(hours string) entity.WeeklySchedule {
	ws := entity.WeeklySchedule{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		ws[day] = hours
	}
	return ws
}

func slotAt(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2027, 3, 1, 10, 0, 0, 0, time.Local)
}

func reserve(t *testing.T, db *gorm.DB, repo domainRepo.BookingRepository, userID uuid.UUID, providerID, serviceID uint, at time.Time) *entity.Booking {
	t.Helper()
	booking := &entity.Booking{
		UserID:     userID,
		ProviderID: providerID,
		ServiceID:  serviceID,
		Datetime:   at,
	}
	if err := repo.Reserve(db, booking); err != nil {
		t.Fatalf("failed to reserve booking: %v", err)
	}
	return booking
}

func TestReserveConflictOnSameSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	other := seedUser(t, db, "b@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)
	at := slotAt(t)

	reserve(t, db, repo, user.ID, provider.ID, service.ID, at)

	second := &entity.Booking{
		UserID:     other.ID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		Datetime:   at,
	}
	if err := repo.Reserve(db, second); err != domainRepo.ErrSlotTaken {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestReserveSucceedsAfterCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)
	at := slotAt(t)

	first := reserve(t, db, repo, user.ID, provider.ID, service.ID, at)

	rows, err := repo.CancelBooking(db, first.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row cancelled, got %d", rows)
	}

	// Cancelled rows are outside the unique index, so the slot is free again.
	reserve(t, db, repo, user.ID, provider.ID, service.ID, at)
}

func TestReserveSameTimeDifferentProviders(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	p1 := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	p2 := seedProvider(t, db, "Dr. Jones", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)
	at := slotAt(t)

	reserve(t, db, repo, user.ID, p1.ID, service.ID, at)
	reserve(t, db, repo, user.ID, p2.ID, service.ID, at)
}

func TestIsSlotAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)
	at := slotAt(t)

	available, err := repo.IsSlotAvailable(db, provider.ID, at)
	if err != nil || !available {
		t.Fatalf("expected slot available before booking, got available=%v err=%v", available, err)
	}

	booking := reserve(t, db, repo, user.ID, provider.ID, service.ID, at)

	available, err = repo.IsSlotAvailable(db, provider.ID, at)
	if err != nil || available {
		t.Fatalf("expected slot taken after booking, got available=%v err=%v", available, err)
	}

	if _, err := repo.CancelBooking(db, booking.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	available, err = repo.IsSlotAvailable(db, provider.ID, at)
	if err != nil || !available {
		t.Fatalf("expected slot available after cancel, got available=%v err=%v", available, err)
	}
}

func TestCancelBookingIsIdempotentAtRowLevel(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)

	booking := reserve(t, db, repo, user.ID, provider.ID, service.ID, slotAt(t))

	rows, err := repo.CancelBooking(db, booking.ID)
	if err != nil || rows != 1 {
		t.Fatalf("first cancel: rows=%d err=%v", rows, err)
	}

	// Second cancel matches nothing: the status guard is in the statement.
	rows, err = repo.CancelBooking(db, booking.ID)
	if err != nil || rows != 0 {
		t.Fatalf("second cancel: rows=%d err=%v, want 0 rows", rows, err)
	}
}

func TestHardDeleteRequiresCancelledState(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)

	booking := reserve(t, db, repo, user.ID, provider.ID, service.ID, slotAt(t))

	rows, err := repo.HardDeleteBooking(db, booking.ID)
	if err != nil || rows != 0 {
		t.Fatalf("hard delete of confirmed booking: rows=%d err=%v, want 0 rows", rows, err)
	}

	if _, err := repo.CancelBooking(db, booking.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	rows, err = repo.HardDeleteBooking(db, booking.ID)
	if err != nil || rows != 1 {
		t.Fatalf("hard delete of cancelled booking: rows=%d err=%v, want 1 row", rows, err)
	}

	found, err := repo.FindByID(db, booking.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if found != nil {
		t.Fatal("expected booking gone after hard delete")
	}
}

func TestFindConfirmedInRangeFiltersStatusAndWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)

	inRange := time.Date(2027, 3, 1, 10, 0, 0, 0, time.Local)
	cancelled := time.Date(2027, 3, 1, 11, 0, 0, 0, time.Local)
	outOfRange := time.Date(2027, 3, 9, 10, 0, 0, 0, time.Local)

	reserve(t, db, repo, user.ID, provider.ID, service.ID, inRange)
	toCancel := reserve(t, db, repo, user.ID, provider.ID, service.ID, cancelled)
	reserve(t, db, repo, user.ID, provider.ID, service.ID, outOfRange)

	if _, err := repo.CancelBooking(db, toCancel.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	from := time.Date(2027, 3, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 7)

	bookings, err := repo.FindConfirmedInRange(db, provider.ID, from, to)
	if err != nil {
		t.Fatalf("find in range failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected exactly the confirmed in-range booking, got %d", len(bookings))
	}
	if !bookings[0].Datetime.Equal(inRange) {
		t.Errorf("unexpected booking at %v", bookings[0].Datetime)
	}
}

func TestFindByUserIDOrdersChronologically(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository()

	user := seedUser(t, db, "a@example.com")
	provider := seedProvider(t, db, "Dr. Smith", fullWeek("09:00-17:00"))
	service := seedService(t, db, "Consultation", 60)

	later := time.Date(2027, 3, 2, 10, 0, 0, 0, time.Local)
	earlier := time.Date(2027, 3, 1, 10, 0, 0, 0, time.Local)

	reserve(t, db, repo, user.ID, provider.ID, service.ID, later)
	reserve(t, db, repo, user.ID, provider.ID, service.ID, earlier)

	bookings, total, err := repo.FindByUserID(db, user.ID, 10, 0)
	if err != nil {
		t.Fatalf("find by user failed: %v", err)
	}
	if total != 2 || len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got total=%d len=%d", total, len(bookings))
	}
	if !bookings[0].Datetime.Before(bookings[1].Datetime) {
		t.Error("expected bookings ordered datetime ascending")
	}
	if bookings[0].Provider.Name != "Dr. Smith" {
		t.Error("expected provider preloaded")
	}
}
