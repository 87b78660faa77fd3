package update

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/planner"
	"github.com/sandeepkv93/weekplan/internal/scheduler"
	"github.com/sandeepkv93/weekplan/internal/sound"
	"github.com/sandeepkv93/weekplan/internal/storage"
)

// memGateway keeps persisted records in memory so model tests stay off
// the filesystem.
type memGateway struct {
	snapshot map[model.Weekday][]model.Task
	sound    *model.AlarmSound
	saves    int
}

func (g *memGateway) SaveStore(s map[model.Weekday][]model.Task) error {
	g.snapshot = s
	g.saves++
	return nil
}

func (g *memGateway) LoadStore() (map[model.Weekday][]model.Task, error) {
	if g.snapshot == nil {
		return map[model.Weekday][]model.Task{}, nil
	}
	return g.snapshot, nil
}

func (g *memGateway) SaveSound(s model.AlarmSound) error {
	g.sound = &s
	return nil
}

func (g *memGateway) LoadSound() (model.AlarmSound, error) {
	if g.sound == nil {
		return model.AlarmSound{}, storage.ErrNotFound
	}
	return *g.sound, nil
}

func (g *memGateway) DeleteSound() error {
	g.sound = nil
	return nil
}

func (g *memGateway) Close() error { return nil }

// fakePlayer records playback calls; failPlay forces the silent path.
type fakePlayer struct {
	played   []string
	beeps    int
	stops    int
	failPlay bool
}

func (p *fakePlayer) Play(s model.AlarmSound) error {
	if p.failPlay {
		return errors.New("no audio device")
	}
	p.played = append(p.played, s.Name)
	return nil
}

func (p *fakePlayer) Beep() error {
	p.beeps++
	return nil
}

func (p *fakePlayer) Stop() { p.stops++ }

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) Send(title, body string) error {
	n.sent = append(n.sent, body)
	return nil
}

func (n *fakeNotifier) Available() bool { return true }

// monday9 anchors tests to Monday 2026-02-09 09:00 UTC.
var monday9 = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *memGateway, *fakePlayer) {
	t.Helper()
	gw := &memGateway{}
	store := planner.NewStore(func() time.Time { return monday9 })
	app := planner.NewApp(store, scheduler.NewReminders(nil, false), gw, sound.NewRegistry(), nil, func() time.Time { return monday9 })
	player := &fakePlayer{}
	m := NewModel(app, nil, &fakeNotifier{}, player, nil, 20*time.Second, func() time.Time { return monday9 })
	return m, gw, player
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentDay != model.Monday {
		t.Fatalf("expected start on current weekday, got %q", m.CurrentDay)
	}
	if !m.Focused {
		t.Fatal("expected model to start focused")
	}
	if m.Keys.Quit != "q" || m.Keys.Complete != " " {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
}

func TestDayNavigationWraps(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = m.changeDay(-1)
	if m.CurrentDay != model.Sunday {
		t.Fatalf("expected wrap to Sunday, got %q", m.CurrentDay)
	}
	m = m.changeDay(1)
	if m.CurrentDay != model.Monday {
		t.Fatalf("expected Monday, got %q", m.CurrentDay)
	}
}

func TestToggleCompleteKeyUpdatesTask(t *testing.T) {
	m, gw, _ := newTestModel(t)
	task, ok := m.App.AddTask(model.Monday, "standup", "09:30")
	if !ok {
		t.Fatal("add failed")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	got, ok := m.App.Store.Find(model.Monday, task.ID)
	if !ok || !got.IsComplete {
		t.Fatalf("expected completed task, got %+v ok=%v", got, ok)
	}
	if !strings.Contains(m.Status.Text, "completed") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
	if gw.saves < 2 {
		t.Fatalf("expected persistence after add and toggle, saves=%d", gw.saves)
	}
}

func TestDeleteKeyForgetsTrigger(t *testing.T) {
	m, _, _ := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:30")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(keyRunes("x"))
	m = updated.(Model)

	if _, ok := m.App.Store.Find(model.Monday, task.ID); ok {
		t.Fatal("task still present after delete")
	}
	if len(m.App.Store.TasksFor(model.Monday)) != 0 {
		t.Fatal("expected empty Monday")
	}
}

func TestTickRaisesAlarmForDueTask(t *testing.T) {
	m, _, player := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	if !m.Alarm.Active {
		t.Fatal("expected active alarm")
	}
	if m.Alarm.TaskText != "standup" {
		t.Fatalf("unexpected alarm text: %q", m.Alarm.TaskText)
	}
	if player.beeps != 1 {
		t.Fatalf("expected one beep, got %d", player.beeps)
	}
}

func TestTickDoesNotRefireSameMinute(t *testing.T) {
	m, _, player := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)
	m.dismissAlarm()

	updated, _ = m.Update(TickMsg{Now: monday9.Add(20 * time.Second)})
	m = updated.(Model)

	if m.Alarm.Active {
		t.Fatal("alarm must not refire within the same minute")
	}
	if player.beeps != 1 {
		t.Fatalf("expected a single beep, got %d", player.beeps)
	}
}

func TestTickSuppressedWhileUnfocused(t *testing.T) {
	m, _, player := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(tea.BlurMsg{})
	m = updated.(Model)
	updated, _ = m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	if m.Alarm.Active || player.beeps != 0 {
		t.Fatal("unfocused tick must not raise an alarm")
	}

	updated, _ = m.Update(tea.FocusMsg{})
	m = updated.(Model)
	updated, _ = m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	if !m.Alarm.Active {
		t.Fatal("expected alarm after regaining focus")
	}
}

func TestAlarmPlaysCustomSoundWhenRegistered(t *testing.T) {
	m, _, player := newTestModel(t)
	m.App.SetCustomSound("chime.wav", []byte{1, 2, 3})
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	if len(player.played) != 1 || player.played[0] != "chime.wav" {
		t.Fatalf("expected custom sound playback, got %v", player.played)
	}
	if player.beeps != 0 {
		t.Fatal("beep should not fire when a custom sound exists")
	}
}

func TestAlarmFallsBackToSilentOnPlaybackFailure(t *testing.T) {
	m, _, player := newTestModel(t)
	player.failPlay = true
	m.App.SetCustomSound("broken.wav", []byte{0xff})
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)

	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	if !m.Alarm.Active || !m.Alarm.Silent {
		t.Fatalf("expected a silent visual alert, got %+v", m.Alarm)
	}
}

func TestAlarmModalSwallowsKeysUntilDismiss(t *testing.T) {
	m, _, player := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)
	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	updated, _ = m.Update(keyRunes("l"))
	m = updated.(Model)
	if m.CurrentDay != model.Monday {
		t.Fatal("day navigation must be swallowed while the alarm is up")
	}

	stopsBefore := player.stops
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Alarm.Active {
		t.Fatal("enter should dismiss the alarm")
	}
	if player.stops <= stopsBefore {
		t.Fatal("dismiss must stop playback")
	}
}

func TestAddFormCreatesTask(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, _ := m.Update(keyRunes("a"))
	m = updated.(Model)
	if !m.AddMode {
		t.Fatal("expected add mode")
	}

	for _, r := range "standup" {
		updated, _ = m.Update(keyRunes(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	for _, r := range "09:30" {
		updated, _ = m.Update(keyRunes(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.AddMode {
		t.Fatal("add mode should close on enter")
	}
	tasks := m.App.Store.TasksFor(model.Monday)
	if len(tasks) != 1 || tasks[0].Text != "standup" || tasks[0].Time != model.Clock("09:30") {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestAddFormRejectsBadTimeSilently(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(keyRunes("a"))
	m = updated.(Model)
	for _, r := range "standup" {
		updated, _ = m.Update(keyRunes(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	for _, r := range "9am" {
		updated, _ = m.Update(keyRunes(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if len(m.App.Store.TasksFor(model.Monday)) != 0 {
		t.Fatal("invalid time must not create a task")
	}
}

func TestReminderFiredRequeuesEligibleTask(t *testing.T) {
	engine := scheduler.NewEngine(4)
	gw := &memGateway{}
	store := planner.NewStore(func() time.Time { return monday9 })
	app := planner.NewApp(store, scheduler.NewReminders(engine, true), gw, sound.NewRegistry(), nil, func() time.Time { return monday9 })
	notifier := &fakeNotifier{}
	m := NewModel(app, engine, notifier, &fakePlayer{}, nil, 20*time.Second, func() time.Time { return monday9 })

	task, _ := app.AddTask(model.Monday, "standup", "10:00")
	app.ToggleAlarm(model.Monday, task.ID)
	if engine.Pending(task.ID) != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", engine.Pending(task.ID))
	}

	updated, _ := m.Update(ReminderFiredMsg{Event: scheduler.ReminderEvent{
		TaskID: task.ID, Day: string(model.Monday), Text: task.Text, TriggerAt: monday9.Add(time.Hour),
	}})
	m = updated.(Model)

	if len(notifier.sent) != 1 || notifier.sent[0] != "standup" {
		t.Fatalf("expected notification delivery, got %v", notifier.sent)
	}
	if engine.Pending(task.ID) != 1 {
		t.Fatalf("expected next week's occurrence to be queued, got %d", engine.Pending(task.ID))
	}
	if !strings.Contains(m.Status.Text, "standup") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestReminderFiredSkipsCompletedTask(t *testing.T) {
	engine := scheduler.NewEngine(4)
	gw := &memGateway{}
	store := planner.NewStore(func() time.Time { return monday9 })
	app := planner.NewApp(store, scheduler.NewReminders(engine, true), gw, sound.NewRegistry(), nil, func() time.Time { return monday9 })
	m := NewModel(app, engine, &fakeNotifier{}, &fakePlayer{}, nil, 20*time.Second, func() time.Time { return monday9 })

	task, _ := app.AddTask(model.Monday, "standup", "10:00")
	app.ToggleAlarm(model.Monday, task.ID)
	app.ToggleComplete(model.Monday, task.ID)

	updated, _ := m.Update(ReminderFiredMsg{Event: scheduler.ReminderEvent{
		TaskID: task.ID, Day: string(model.Monday), Text: task.Text, TriggerAt: monday9.Add(time.Hour),
	}})
	_ = updated.(Model)

	if engine.Pending(task.ID) != 0 {
		t.Fatalf("completed task must not requeue, pending=%d", engine.Pending(task.ID))
	}
}

func TestStatusMsgUpdatesStatusBar(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	m = updated.(Model)
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestQuitStopsPlayback(t *testing.T) {
	m, _, player := newTestModel(t)
	updated, cmd := m.Update(keyRunes("q"))
	m = updated.(Model)
	if !m.Quitting {
		t.Fatal("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if player.stops != 1 {
		t.Fatalf("expected playback stop on quit, got %d", player.stops)
	}
}

func TestViewShowsEmptyDayPlaceholder(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "A fresh start. Add a task to begin.") {
		t.Fatal("expected empty-day placeholder in view")
	}
}

func TestViewRendersAlarmModal(t *testing.T) {
	m, _, _ := newTestModel(t)
	task, _ := m.App.AddTask(model.Monday, "standup", "09:00")
	m.App.ToggleAlarm(model.Monday, task.ID)
	updated, _ := m.Update(TickMsg{Now: monday9})
	m = updated.(Model)

	out := m.View()
	if !strings.Contains(out, "TASK REMINDER") || !strings.Contains(out, "standup") {
		t.Fatal("expected alarm modal content in view")
	}
}
