package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// WeeklySchedule maps lowercase weekday names ("monday".."sunday") to a
// working interval in "HH:MM-HH:MM" form. An absent key or empty string means
// the provider is closed that day. Stored as a JSON column on the provider.
type WeeklySchedule map[string]string

var intervalPattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// WeekdayName returns the canonical lowercase name for a weekday.
func WeekdayName(w time.Weekday) string {
	return strings.ToLower(w.String())
}

// WorkingInterval is a provider's open window on one weekday, held as minutes
// from midnight. Open is inclusive, Close exclusive for start times; a service
// may end exactly at Close.
type WorkingInterval struct {
	Open  int
	Close int
}

// OpenOn anchors the open bound to a calendar day.
func (wi WorkingInterval) OpenOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), wi.Open/60, wi.Open%60, 0, 0, day.Location())
}

// CloseOn anchors the close bound to a calendar day.
func (wi WorkingInterval) CloseOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), wi.Close/60, wi.Close%60, 0, 0, day.Location())
}

// String renders the window the way it is stored, e.g. "09:00-17:00".
func (wi WorkingInterval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", wi.Open/60, wi.Open%60, wi.Close/60, wi.Close%60)
}

// Normalize lowercases weekday keys so lookups are case-insensitive.
func (ws WeeklySchedule) Normalize() WeeklySchedule {
	if ws == nil {
		return nil
	}
	out := make(WeeklySchedule, len(ws))
	for day, hours := range ws {
		out[strings.ToLower(day)] = hours
	}
	return out
}

// IsOpenOn reports whether a non-empty interval is configured for the weekday.
func (ws WeeklySchedule) IsOpenOn(w time.Weekday) bool {
	hours, ok := ws[WeekdayName(w)]
	return ok && hours != ""
}

// IntervalFor parses the stored interval for the weekday. The second return is
// false when the day is closed, absent, or the stored value is malformed;
// callers that need to tell those cases apart use IsOpenOn first.
func (ws WeeklySchedule) IntervalFor(w time.Weekday) (WorkingInterval, bool) {
	hours, ok := ws[WeekdayName(w)]
	if !ok || hours == "" {
		return WorkingInterval{}, false
	}
	return parseInterval(hours)
}

func parseInterval(hours string) (WorkingInterval, bool) {
	m := intervalPattern.FindStringSubmatch(hours)
	if m == nil {
		return WorkingInterval{}, false
	}
	open, okOpen := timeOfDayMinutes(m[1], m[2])
	close, okClose := timeOfDayMinutes(m[3], m[4])
	if !okOpen || !okClose || open >= close {
		return WorkingInterval{}, false
	}
	return WorkingInterval{Open: open, Close: close}, true
}

func timeOfDayMinutes(hh, mm string) (int, bool) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// Validate checks every entry of the schedule and returns a field->message
// map, empty when the schedule is valid. Run when a provider is created or
// updated; booking-time parsing failures are a separate runtime error.
func (ws WeeklySchedule) Validate() map[string]string {
	errs := make(map[string]string)
	for day, hours := range ws {
		key := strings.ToLower(day)
		if _, ok := weekdayNames[key]; !ok {
			errs[day] = fmt.Sprintf("%q is not a valid weekday", day)
			continue
		}
		if hours == "" {
			continue // closed
		}
		m := intervalPattern.FindStringSubmatch(hours)
		if m == nil {
			errs[key] = fmt.Sprintf("working hours must be in HH:MM-HH:MM format, got %q", hours)
			continue
		}
		open, okOpen := timeOfDayMinutes(m[1], m[2])
		close, okClose := timeOfDayMinutes(m[3], m[4])
		if !okOpen || !okClose {
			errs[key] = fmt.Sprintf("working hours contain an invalid time of day: %q", hours)
			continue
		}
		if open >= close {
			errs[key] = fmt.Sprintf("opening time must be before closing time, got %q", hours)
		}
	}
	return errs
}

// Value implements driver.Valuer so the schedule persists as JSON.
func (ws WeeklySchedule) Value() (driver.Value, error) {
	if ws == nil {
		return json.Marshal(WeeklySchedule{})
	}
	return json.Marshal(ws)
}

// Scan implements sql.Scanner.
func (ws *WeeklySchedule) Scan(value interface{}) error {
	if value == nil {
		*ws = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal working hours value:", value))
	}

	result := WeeklySchedule{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*ws = result.Normalize()
	return nil
}
