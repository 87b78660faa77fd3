package scheduler

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// Reminders keeps the deferred-notification schedule in step with task
// state. One live entry per task id: Schedule always cancels the
// previous entry before queueing the next occurrence. When the
// facility is disabled every call degrades to a nil no-op; reminders
// are convenience, not guaranteed delivery.
type Reminders struct {
	engine  *Engine
	enabled bool
}

func NewReminders(engine *Engine, enabled bool) *Reminders {
	return &Reminders{engine: engine, enabled: enabled && engine != nil}
}

// Enabled reports whether the deferred path is live.
func (r *Reminders) Enabled() bool {
	return r.enabled
}

// Schedule queues the task's next weekly occurrence from now. The
// weekly repeat is reconstructed on every call rather than kept as a
// recurring timer, so the entry always points at the single next
// firing.
func (r *Reminders) Schedule(task model.Task, now time.Time) error {
	if !r.enabled {
		return nil
	}
	r.engine.Cancel(task.ID)
	ev := ReminderEvent{
		TaskID:    task.ID,
		Day:       string(task.Day),
		Text:      task.Text,
		TriggerAt: NextOccurrence(task.Day, task.Time, now),
	}
	if err := r.engine.Schedule(ev); err != nil {
		return fmt.Errorf("schedule reminder for task %d: %w", task.ID, err)
	}
	return nil
}

// Cancel drops any pending firing for the task id. Best-effort and
// idempotent: missing entries or a disabled facility are not errors.
func (r *Reminders) Cancel(taskID int64) error {
	if !r.enabled {
		return nil
	}
	r.engine.Cancel(taskID)
	return nil
}

// Sync rebuilds the schedule for every alarm-eligible task, used once
// after load so persisted tasks regain their deferred entries.
func (r *Reminders) Sync(tasks []model.Task, now time.Time) error {
	if !r.enabled {
		return nil
	}
	var firstErr error
	for _, task := range tasks {
		if task.IsComplete || !task.AlarmSet {
			continue
		}
		if err := r.Schedule(task, now); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
