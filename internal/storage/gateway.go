// Package storage persists the week of tasks and the alarm sound as
// two keyed records in a local SQLite database.
package storage

import (
	"errors"

	"github.com/sandeepkv93/weekplan/internal/model"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrCorrupt marks a record that exists but does not decode; the
	// caller decides whether to fall back to first-run defaults.
	ErrCorrupt = errors.New("storage: corrupt record")
)

const (
	keyTasks      = "planner.tasks"
	keyAlarmSound = "planner.alarm_sound"
)

// Gateway is the persistence boundary. Save methods are called after
// every mutation; Load methods run once at startup.
type Gateway interface {
	SaveStore(snapshot map[model.Weekday][]model.Task) error
	LoadStore() (map[model.Weekday][]model.Task, error)

	SaveSound(s model.AlarmSound) error
	LoadSound() (model.AlarmSound, error)
	DeleteSound() error

	Close() error
}
