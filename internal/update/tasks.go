package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/views"
)

func (m Model) handleDayKey(msg tea.KeyMsg) Model {
	tasks := m.App.Store.TasksFor(m.CurrentDay)

	switch msg.String() {
	case "h", "left":
		m = m.changeDay(-1)
	case "l", "right":
		m = m.changeDay(1)
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(tasks)-1 {
			m.Cursor++
		}
	case m.Keys.Add:
		m.AddMode = true
		m.addTimeFocused = false
		m.addTextInput.SetValue("")
		m.addTimeInput.SetValue("")
		m.addTextInput.Focus()
		m.addTimeInput.Blur()
	case m.Keys.Complete:
		if task, ok := m.selectedTask(tasks); ok {
			if updated, applied := m.App.ToggleComplete(m.CurrentDay, task.ID); applied {
				m.Status = StatusBar{Text: completionStatus(updated)}
			}
		}
	case m.Keys.Alarm:
		if task, ok := m.selectedTask(tasks); ok {
			if updated, applied := m.App.ToggleAlarm(m.CurrentDay, task.ID); applied {
				m.Status = StatusBar{Text: alarmStatus(updated)}
			}
		}
	case m.Keys.Delete:
		if task, ok := m.selectedTask(tasks); ok {
			if m.App.DeleteTask(m.CurrentDay, task.ID) {
				m.Trigger.Forget(task.ID)
				m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text)}
				if m.Cursor > 0 {
					m.Cursor--
				}
			}
		}
	}
	return m
}

func (m Model) changeDay(delta int) Model {
	all := model.AllWeekdays()
	for i, day := range all {
		if day == m.CurrentDay {
			m.CurrentDay = all[(i+delta+7)%7]
			break
		}
	}
	m.Cursor = 0
	return m
}

func (m Model) selectedTask(tasks []model.Task) (model.Task, bool) {
	if len(tasks) == 0 || m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

// handleAddKey drives the two-field add form: task text, then tab to
// the HH:MM field, enter to submit. Invalid input is dropped without
// an error, matching the add contract.
func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.AddMode = false
		m.addTextInput.Blur()
		m.addTimeInput.Blur()
		return m
	case "tab", "shift+tab":
		m.addTimeFocused = !m.addTimeFocused
		if m.addTimeFocused {
			m.addTextInput.Blur()
			m.addTimeInput.Focus()
		} else {
			m.addTimeInput.Blur()
			m.addTextInput.Focus()
		}
		return m
	case "enter":
		text := m.addTextInput.Value()
		rawTime := m.addTimeInput.Value()
		m.AddMode = false
		m.addTextInput.Blur()
		m.addTimeInput.Blur()
		if task, ok := m.App.AddTask(m.CurrentDay, text, rawTime); ok {
			m.Status = StatusBar{Text: fmt.Sprintf("added %s at %s", task.Text, task.Time.Format12())}
		}
		return m
	}

	var cmd tea.Cmd
	if m.addTimeFocused {
		m.addTimeInput, cmd = m.addTimeInput.Update(msg)
	} else {
		m.addTextInput, cmd = m.addTextInput.Update(msg)
	}
	_ = cmd
	return m
}

func (m Model) renderDayPanel() string {
	tasks := m.App.Store.TasksFor(m.CurrentDay)
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, task := range tasks {
		rows = append(rows, views.TaskRowData{
			ID:         task.ID,
			Text:       task.Text,
			Time12:     task.Time.Format12(),
			IsComplete: task.IsComplete,
			AlarmSet:   task.AlarmSet,
			Selected:   i == m.Cursor && !m.AddMode,
		})
	}
	return views.RenderDayPanel(views.DayPanelData{
		Day:      string(m.CurrentDay),
		Rows:     rows,
		AddMode:  m.AddMode,
		AddView:  m.addTextInput.View(),
		TimeView: m.addTimeInput.View(),
	})
}

func completionStatus(t model.Task) string {
	if t.IsComplete {
		return fmt.Sprintf("completed: %s", t.Text)
	}
	return fmt.Sprintf("reopened: %s", t.Text)
}

func alarmStatus(t model.Task) string {
	if t.AlarmSet {
		return fmt.Sprintf("alarm on: %s", t.Text)
	}
	return fmt.Sprintf("alarm off: %s", t.Text)
}
