// Package scheduler computes reminder fire times and keeps an ordered
// schedule of upcoming firings for the deferred notification path.
package scheduler

import (
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// NextOccurrence returns the next instant, strictly after now, at
// which the weekday+time pair comes around. Starting from today at the
// task's HH:MM, the candidate advances one day at a time until its
// weekday matches and it lies in the future. A matching weekday whose
// time already passed today therefore lands a full week out; the result
// is never more than 7 days ahead.
func NextOccurrence(day model.Weekday, clock model.Clock, now time.Time) time.Time {
	hour, minute := clock.HourMinute()
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for candidate.Weekday() != day.Time() || !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}
