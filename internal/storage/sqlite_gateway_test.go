package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/weekplan/internal/model"
)

func setupGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "weekplan-test.db")
	gw, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

func TestFirstRunLoadYieldsEmptyWeek(t *testing.T) {
	gw := setupGateway(t)

	week, err := gw.LoadStore()
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 weekday keys, got %d", len(week))
	}
	for _, day := range model.AllWeekdays() {
		bucket, ok := week[day]
		if !ok {
			t.Fatalf("missing day %s", day)
		}
		if len(bucket) != 0 {
			t.Fatalf("day %s not empty: %+v", day, bucket)
		}
	}

	if _, err := gw.LoadSound(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for sound, got: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	gw := setupGateway(t)

	saved := map[model.Weekday][]model.Task{
		model.Monday: {
			{ID: 1700000000000, Day: model.Monday, Text: "standup", Time: "09:30", AlarmSet: true},
			{ID: 1700000000001, Day: model.Monday, Text: "review", Time: "14:00", IsComplete: true},
		},
		model.Saturday: {
			{ID: 1700000000002, Day: model.Saturday, Text: "gym", Time: "08:00", AlarmSet: true},
		},
	}
	if err := gw.SaveStore(saved); err != nil {
		t.Fatalf("save store: %v", err)
	}

	loaded, err := gw.LoadStore()
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	for day, tasks := range saved {
		got := loaded[day]
		if len(got) != len(tasks) {
			t.Fatalf("%s: got %d tasks, want %d", day, len(got), len(tasks))
		}
		for i := range tasks {
			if got[i] != tasks[i] {
				t.Fatalf("%s[%d]: got %+v, want %+v", day, i, got[i], tasks[i])
			}
		}
	}
	if len(loaded[model.Tuesday]) != 0 {
		t.Fatalf("unexpected Tuesday tasks: %+v", loaded[model.Tuesday])
	}
}

func TestSaveStoreOverwritesPreviousRecord(t *testing.T) {
	gw := setupGateway(t)

	first := map[model.Weekday][]model.Task{
		model.Monday: {{ID: 1, Day: model.Monday, Text: "old", Time: "09:00", AlarmSet: true}},
	}
	if err := gw.SaveStore(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := map[model.Weekday][]model.Task{
		model.Friday: {{ID: 2, Day: model.Friday, Text: "new", Time: "10:00", AlarmSet: true}},
	}
	if err := gw.SaveStore(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := gw.LoadStore()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded[model.Monday]) != 0 {
		t.Fatalf("old record leaked through: %+v", loaded[model.Monday])
	}
	if len(loaded[model.Friday]) != 1 || loaded[model.Friday][0].Text != "new" {
		t.Fatalf("unexpected Friday tasks: %+v", loaded[model.Friday])
	}
}

func TestCorruptTaskRecordReturnsErrCorrupt(t *testing.T) {
	gw := setupGateway(t)

	if err := gw.putRecord(keyTasks, []byte("{not json")); err != nil {
		t.Fatalf("put corrupt record: %v", err)
	}
	if _, err := gw.LoadStore(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got: %v", err)
	}
}

func TestSoundRoundTripAndDelete(t *testing.T) {
	gw := setupGateway(t)

	in := model.AlarmSound{Name: "chime.wav", Data: []byte{0x52, 0x49, 0x46, 0x46}}
	if err := gw.SaveSound(in); err != nil {
		t.Fatalf("save sound: %v", err)
	}

	out, err := gw.LoadSound()
	if err != nil {
		t.Fatalf("load sound: %v", err)
	}
	if out.Name != in.Name || string(out.Data) != string(in.Data) {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	if err := gw.DeleteSound(); err != nil {
		t.Fatalf("delete sound: %v", err)
	}
	if _, err := gw.LoadSound(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
	// Deleting twice is fine.
	if err := gw.DeleteSound(); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestCorruptSoundRecordReturnsErrCorrupt(t *testing.T) {
	gw := setupGateway(t)

	if err := gw.putRecord(keyAlarmSound, []byte("][")); err != nil {
		t.Fatalf("put corrupt record: %v", err)
	}
	if _, err := gw.LoadSound(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got: %v", err)
	}
}
