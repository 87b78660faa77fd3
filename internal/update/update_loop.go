package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/scheduler"
	"github.com/sandeepkv93/weekplan/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.Engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.Engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Now: t}
	})
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderFiredMsg{Event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.FocusMsg:
		m.Focused = true
		return m, nil
	case tea.BlurMsg:
		m.Focused = false
		return m, nil
	case TickMsg:
		return m.onTick(typed.Now)
	case ReminderFiredMsg:
		return m.onReminderFired(typed.Event)
	case DismissAlarmMsg:
		m.dismissAlarm()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		if m.Player != nil {
			m.Player.Stop()
		}
		return m, tea.Quit
	}

	// The alarm modal swallows all keys until dismissed.
	if m.Alarm.Active {
		switch msg.String() {
		case "enter", "esc":
			m.dismissAlarm()
		}
		return m, nil
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	if m.Settings {
		return m.handleSettingsKey(msg), nil
	}
	if m.AddMode {
		return m.handleAddKey(msg), nil
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Settings:
		m.Settings = true
		m.soundPathInput.SetValue("")
		m.soundPathInput.Focus()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		if m.Player != nil {
			m.Player.Stop()
		}
		return m, tea.Quit
	}

	return m.handleDayKey(msg), nil
}

// onTick is the in-app alarm poll. Alerts are suppressed while the
// terminal is unfocused; the deferred notification path covers those
// occurrences.
func (m Model) onTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.Focused {
		return m, m.tickCmd()
	}
	due := m.Trigger.Due(now)
	for _, task := range due {
		m = m.raiseAlarm(task)
	}
	return m, m.tickCmd()
}

// raiseAlarm shows the modal alert and starts audio. Last wins: any
// playing sound stops first. Audio failure downgrades to a silent,
// still-visible alert.
func (m Model) raiseAlarm(task model.Task) Model {
	silent := false
	if m.Player != nil {
		m.Player.Stop()
		if custom, ok := m.App.Sounds.Current(); ok {
			if err := m.Player.Play(custom); err != nil {
				m.logf("play custom alarm sound %q: %v", custom.Name, err)
				silent = true
			}
		} else if err := m.Player.Beep(); err != nil {
			m.logf("alarm beep: %v", err)
			silent = true
		}
	} else {
		silent = true
	}
	m.Alarm = AlarmState{Active: true, TaskText: task.Text, Silent: silent}
	return m
}

func (m *Model) dismissAlarm() {
	if m.Player != nil {
		m.Player.Stop()
	}
	m.Alarm = AlarmState{}
}

// onReminderFired handles a deferred firing from the engine: deliver
// through the platform notifier and queue next week's occurrence if
// the task is still alarm-eligible.
func (m Model) onReminderFired(ev scheduler.ReminderEvent) (tea.Model, tea.Cmd) {
	if m.Notifier != nil && m.Notifier.Available() {
		if err := m.Notifier.Send("Task Reminder!", ev.Text); err != nil {
			m.logf("deliver notification for task %d: %v", ev.TaskID, err)
		}
	}
	if task, ok := m.App.Store.FindAnywhere(ev.TaskID); ok && task.AlarmSet && !task.IsComplete {
		if err := m.App.Reminders.Schedule(task, m.now()); err != nil {
			m.logf("requeue reminder for task %d: %v", ev.TaskID, err)
		}
	}
	m.Status = StatusBar{Text: fmt.Sprintf("reminder fired: %s", ev.Text)}
	if m.Engine != nil {
		return m, waitForReminderCmd(m.Engine.C())
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := m.renderDayPanel()
	if m.Settings {
		body += "\n\n" + m.renderSettingsPanel()
	}
	if m.Palette.Active {
		body += "\n\n" + views.RenderCommandPalette(true, m.Palette.Input)
	}
	if m.HelpVisible {
		body += "\n\n" + m.renderHelpView()
	}

	modal := ""
	if m.Alarm.Active {
		modal = views.RenderAlarmModal(views.AlarmModalData{
			TaskText: m.Alarm.TaskText,
			Silent:   m.Alarm.Silent,
		})
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("weekplan | %d task(s) this week", m.App.Store.Count()),
		DayTabs:    m.renderDayTabs(),
		Body:       body,
		StatusLine: status,
		Modal:      modal,
		Footer: fmt.Sprintf("keys: h/l day | j/k move | %s add | space done | %s bell | %s del | %s settings | / cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Alarm, m.Keys.Delete, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderDayTabs() string {
	days := make([]string, 0, 7)
	for _, day := range model.AllWeekdays() {
		days = append(days, string(day))
	}
	return views.RenderDayTabs(days, string(m.CurrentDay))
}
