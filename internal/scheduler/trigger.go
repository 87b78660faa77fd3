package scheduler

import (
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// DayTasks is the slice of the task store the trigger needs: the
// bucket for one weekday, already filtered however the owner likes.
type DayTasks interface {
	TasksFor(day model.Weekday) []model.Task
}

// Trigger is the in-app alarm check. The UI drives it from its tick;
// each Due call matches the current weekday bucket against the current
// minute and remembers what already fired so a task alerts at most
// once per matching minute, even with several ticks inside it.
type Trigger struct {
	store     DayTasks
	lastFired map[int64]string
}

func NewTrigger(store DayTasks) *Trigger {
	return &Trigger{
		store:     store,
		lastFired: make(map[int64]string),
	}
}

// Matches reports whether the task should alert at this instant:
// alarm on, not complete, and its HH:MM equal to now's.
func Matches(task model.Task, now time.Time) bool {
	return task.AlarmSet && !task.IsComplete && task.Time == model.ClockOf(now)
}

// Due returns the tasks to alert for at this tick, at most once per
// task per matching minute. A tick that lands outside any task's
// minute returns nothing; a minute skipped while suspended is simply
// missed, the deferred path covers that case.
func (t *Trigger) Due(now time.Time) []model.Task {
	minute := now.Format("2006-01-02 15:04")
	day := model.CurrentWeekday(now)

	out := make([]model.Task, 0)
	for _, task := range t.store.TasksFor(day) {
		if !Matches(task, now) {
			continue
		}
		if t.lastFired[task.ID] == minute {
			continue
		}
		t.lastFired[task.ID] = minute
		out = append(out, task)
	}
	return out
}

// Forget drops the fired-minute memory for a task, for use when the
// task is deleted.
func (t *Trigger) Forget(taskID int64) {
	delete(t.lastFired, taskID)
}
