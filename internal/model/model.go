package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidWeekday = errors.New("model: invalid weekday")
	ErrInvalidClock   = errors.New("model: invalid clock time")
)

// Weekday is one of the seven day names. The zero value is not valid.
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

func (d Weekday) IsValid() bool {
	switch d {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	default:
		return false
	}
}

// Short returns the 3-letter tab label.
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d)[:3]
}

// Time maps a Weekday onto the time package's numbering.
func (d Weekday) Time() time.Weekday {
	for i, day := range AllWeekdays() {
		if day == d {
			return time.Weekday(i)
		}
	}
	return time.Sunday
}

// AllWeekdays returns the seven day names Sunday-first, matching
// time.Weekday numbering.
func AllWeekdays() [7]Weekday {
	return [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// CurrentWeekday names the weekday of the given instant.
func CurrentWeekday(now time.Time) Weekday {
	return AllWeekdays()[int(now.Weekday())]
}

// ParseWeekday accepts full names case-insensitively.
func ParseWeekday(raw string) (Weekday, error) {
	trimmed := strings.TrimSpace(raw)
	for _, day := range AllWeekdays() {
		if strings.EqualFold(trimmed, string(day)) {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, raw)
}

// Clock is a wall-clock time of day stored as zero-padded "HH:MM".
// Lexicographic order equals time order.
type Clock string

// ParseClock validates and normalizes an HH:MM string.
func ParseClock(raw string) (Clock, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 5 || trimmed[2] != ':' {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	h, m, ok := clockDigits(trimmed)
	if !ok || h > 23 || m > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	return Clock(trimmed), nil
}

func clockDigits(s string) (hour, minute int, ok bool) {
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	return hour, minute, true
}

// HourMinute splits the clock into components. Clock must be valid.
func (c Clock) HourMinute() (hour, minute int) {
	h, m, _ := clockDigits(string(c))
	return h, m
}

// Format12 renders the clock as 12-hour with AM/PM, e.g. "2:05 PM".
func (c Clock) Format12() string {
	h, m := c.HourMinute()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ClockOf extracts the HH:MM of an instant.
func ClockOf(now time.Time) Clock {
	return Clock(now.Format("15:04"))
}

// Task is one planned item on one weekday. Day is assigned at creation
// and never moves.
type Task struct {
	ID         int64   `json:"id"`
	Day        Weekday `json:"day"`
	Text       string  `json:"text"`
	Time       Clock   `json:"time"`
	IsComplete bool    `json:"isComplete"`
	AlarmSet   bool    `json:"alarmSet"`
}

func (t Task) Validate() error {
	if t.ID == 0 {
		return errors.New("model: task id is required")
	}
	if !t.Day.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWeekday, t.Day)
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if _, err := ParseClock(string(t.Time)); err != nil {
		return err
	}
	return nil
}

// AlarmSound is a user-supplied audio payload. Absence means the
// synthesized tone is used instead.
type AlarmSound struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}
