package planner

import (
	"errors"
	"log"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/scheduler"
	"github.com/sandeepkv93/weekplan/internal/sound"
	"github.com/sandeepkv93/weekplan/internal/storage"
)

// App owns the application state and applies every mutation with its
// side effects in order: mutate the store, reconcile the deferred
// reminder, then persist. Reminder and persistence failures are logged
// and never interrupt the user-visible flow.
type App struct {
	Store     *Store
	Reminders *scheduler.Reminders
	Gateway   storage.Gateway
	Sounds    *sound.Registry

	log *log.Logger
	now NowFunc
}

func NewApp(store *Store, reminders *scheduler.Reminders, gateway storage.Gateway, sounds *sound.Registry, logger *log.Logger, now NowFunc) *App {
	if now == nil {
		now = store.now
	}
	return &App{
		Store:     store,
		Reminders: reminders,
		Gateway:   gateway,
		Sounds:    sounds,
		log:       logger,
		now:       now,
	}
}

// Load restores persisted state. A corrupt record falls back to the
// first-run empty default with a warning instead of failing startup.
// Deferred reminders are rebuilt for every alarm-eligible task.
func (a *App) Load() error {
	snapshot, err := a.Gateway.LoadStore()
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			return err
		}
		a.logf("discarding corrupt task record, starting empty: %v", err)
		snapshot = nil
	}
	if snapshot != nil {
		a.Store.Restore(snapshot)
	}

	s, err := a.Gateway.LoadSound()
	switch {
	case err == nil:
		a.Sounds.Restore(s)
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrCorrupt):
		a.logf("discarding corrupt alarm sound record: %v", err)
	default:
		return err
	}

	if err := a.Reminders.Sync(a.Store.All(), a.now()); err != nil {
		a.logf("reminder sync after load: %v", err)
	}
	return nil
}

// AddTask creates a task, schedules its reminder and persists. Empty
// text or an invalid time is silently ignored.
func (a *App) AddTask(day model.Weekday, text, rawTime string) (model.Task, bool) {
	task, ok := a.Store.AddTask(day, text, rawTime)
	if !ok {
		return model.Task{}, false
	}
	if err := a.Reminders.Schedule(task, a.now()); err != nil {
		a.logf("schedule reminder for new task %d: %v", task.ID, err)
	}
	a.persist()
	return task, true
}

// ToggleComplete flips completion. Completing a task cancels its
// reminder; un-completing an alarm-enabled task reschedules it.
func (a *App) ToggleComplete(day model.Weekday, id int64) (model.Task, bool) {
	task, ok := a.Store.ToggleComplete(day, id)
	if !ok {
		return model.Task{}, false
	}
	if task.IsComplete {
		if err := a.Reminders.Cancel(task.ID); err != nil {
			a.logf("cancel reminder for completed task %d: %v", task.ID, err)
		}
	} else if task.AlarmSet {
		if err := a.Reminders.Schedule(task, a.now()); err != nil {
			a.logf("reschedule reminder for task %d: %v", task.ID, err)
		}
	}
	a.persist()
	return task, true
}

// ToggleAlarm flips the alarm flag with matching schedule/cancel.
func (a *App) ToggleAlarm(day model.Weekday, id int64) (model.Task, bool) {
	task, ok := a.Store.ToggleAlarm(day, id)
	if !ok {
		return model.Task{}, false
	}
	if task.AlarmSet && !task.IsComplete {
		if err := a.Reminders.Schedule(task, a.now()); err != nil {
			a.logf("schedule reminder for task %d: %v", task.ID, err)
		}
	} else {
		if err := a.Reminders.Cancel(task.ID); err != nil {
			a.logf("cancel reminder for task %d: %v", task.ID, err)
		}
	}
	a.persist()
	return task, true
}

// DeleteTask cancels the reminder first, then removes the task and
// persists. Cancellation is best-effort and never blocks the delete.
func (a *App) DeleteTask(day model.Weekday, id int64) bool {
	if err := a.Reminders.Cancel(id); err != nil {
		a.logf("cancel reminder for deleted task %d: %v", id, err)
	}
	if !a.Store.DeleteTask(day, id) {
		return false
	}
	a.persist()
	return true
}

// SetCustomSound replaces the alarm sound and persists immediately.
func (a *App) SetCustomSound(name string, data []byte) {
	a.Sounds.SetCustom(name, data)
	if err := a.Gateway.SaveSound(model.AlarmSound{Name: name, Data: data}); err != nil {
		a.logf("save alarm sound: %v", err)
	}
}

// ClearCustomSound reverts to the synthesized tone.
func (a *App) ClearCustomSound() {
	a.Sounds.Clear()
	if err := a.Gateway.DeleteSound(); err != nil {
		a.logf("delete alarm sound: %v", err)
	}
}

func (a *App) persist() {
	if err := a.Gateway.SaveStore(a.Store.Snapshot()); err != nil {
		a.logf("save task store: %v", err)
	}
}

func (a *App) logf(format string, args ...any) {
	if a.log != nil {
		a.log.Printf(format, args...)
	}
}
