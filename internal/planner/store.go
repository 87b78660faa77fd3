// Package planner owns the in-memory week of tasks. The Store is the
// single source of truth; everything else reads snapshots of it.
package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// NowFunc supplies the current instant; injected for tests.
type NowFunc func() time.Time

// Store maps each of the seven weekdays to its task bucket. All seven
// keys are always present once constructed. Not safe for concurrent
// use; the update loop is the only writer.
type Store struct {
	buckets map[model.Weekday][]model.Task
	now     NowFunc
	lastID  int64
}

func NewStore(now NowFunc) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		buckets: make(map[model.Weekday][]model.Task, 7),
		now:     now,
	}
	for _, day := range model.AllWeekdays() {
		s.buckets[day] = make([]model.Task, 0)
	}
	return s
}

// AddTask appends a new task to the day's bucket. Empty text or an
// invalid time is ignored: ok is false and nothing changes.
func (s *Store) AddTask(day model.Weekday, text string, rawTime string) (model.Task, bool) {
	if !day.IsValid() {
		return model.Task{}, false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, false
	}
	clock, err := model.ParseClock(rawTime)
	if err != nil {
		return model.Task{}, false
	}
	task := model.Task{
		ID:       s.nextID(),
		Day:      day,
		Text:     trimmed,
		Time:     clock,
		AlarmSet: true,
	}
	s.buckets[day] = append(s.buckets[day], task)
	return task, true
}

// nextID derives ids from creation time in milliseconds, bumped past
// the last issued id so rapid successive adds stay unique.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ToggleComplete flips IsComplete on the matching task and returns the
// updated task. ok is false when no task with that id is in the bucket.
func (s *Store) ToggleComplete(day model.Weekday, id int64) (model.Task, bool) {
	return s.mutate(day, id, func(t *model.Task) {
		t.IsComplete = !t.IsComplete
	})
}

// ToggleAlarm flips AlarmSet on the matching task.
func (s *Store) ToggleAlarm(day model.Weekday, id int64) (model.Task, bool) {
	return s.mutate(day, id, func(t *model.Task) {
		t.AlarmSet = !t.AlarmSet
	})
}

func (s *Store) mutate(day model.Weekday, id int64, apply func(*model.Task)) (model.Task, bool) {
	bucket := s.buckets[day]
	for i := range bucket {
		if bucket[i].ID == id {
			apply(&bucket[i])
			return bucket[i], true
		}
	}
	return model.Task{}, false
}

// DeleteTask removes the task from its day's bucket.
func (s *Store) DeleteTask(day model.Weekday, id int64) bool {
	bucket := s.buckets[day]
	for i := range bucket {
		if bucket[i].ID == id {
			s.buckets[day] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// Find looks up a task by id within a day. Linear scan; buckets hold
// tens of items at most.
func (s *Store) Find(day model.Weekday, id int64) (model.Task, bool) {
	for _, t := range s.buckets[day] {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// FindAnywhere scans every bucket for the id.
func (s *Store) FindAnywhere(id int64) (model.Task, bool) {
	for _, day := range model.AllWeekdays() {
		if t, ok := s.Find(day, id); ok {
			return t, true
		}
	}
	return model.Task{}, false
}

// TasksFor returns the day's tasks sorted time-ascending. The sort is
// stable so same-minute tasks keep insertion order. The returned slice
// is a copy.
func (s *Store) TasksFor(day model.Weekday) []model.Task {
	bucket := s.buckets[day]
	out := make([]model.Task, len(bucket))
	copy(out, bucket)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// AlarmEligible returns the subset of the day's tasks that can still
// produce reminders.
func (s *Store) AlarmEligible(day model.Weekday) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range s.TasksFor(day) {
		if t.AlarmSet && !t.IsComplete {
			out = append(out, t)
		}
	}
	return out
}

// All walks every bucket in weekday order.
func (s *Store) All() []model.Task {
	out := make([]model.Task, 0)
	for _, day := range model.AllWeekdays() {
		out = append(out, s.TasksFor(day)...)
	}
	return out
}

// Count reports the total number of tasks across all buckets.
func (s *Store) Count() int {
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

// Snapshot copies the full week for serialization.
func (s *Store) Snapshot() map[model.Weekday][]model.Task {
	out := make(map[model.Weekday][]model.Task, 7)
	for _, day := range model.AllWeekdays() {
		bucket := s.buckets[day]
		copied := make([]model.Task, len(bucket))
		copy(copied, bucket)
		out[day] = copied
	}
	return out
}

// Restore replaces the store contents with a loaded snapshot. Missing
// weekday keys become empty buckets, so a partial record still yields
// a fully populated week. Tasks that fail validation are dropped.
func (s *Store) Restore(snapshot map[model.Weekday][]model.Task) {
	for _, day := range model.AllWeekdays() {
		bucket := make([]model.Task, 0, len(snapshot[day]))
		for _, t := range snapshot[day] {
			t.Day = day
			if err := t.Validate(); err != nil {
				continue
			}
			bucket = append(bucket, t)
			if t.ID > s.lastID {
				s.lastID = t.ID
			}
		}
		s.buckets[day] = bucket
	}
}
