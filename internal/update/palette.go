package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/commands"
	"github.com/sandeepkv93/weekplan/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			day, parseErr := model.ParseWeekday(a.Day)
			if parseErr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown day: %s", a.Day)}
			}
			task, ok := m.App.AddTask(day, a.Text, a.Time)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task text and HH:MM time are required"}
			}
			m.CurrentDay = day
			return commands.Result{Message: fmt.Sprintf("added %s %s: %s", day, task.Time, task.Text)}, nil
		},
		Done: func(a commands.TaskArgs) (commands.Result, error) {
			task, ok := m.findTaskDay(a.ID)
			if !ok {
				return commands.Result{}, taskNotFound(a.ID)
			}
			updated, _ := m.App.ToggleComplete(task.Day, task.ID)
			return commands.Result{Message: completionStatus(updated)}, nil
		},
		Alarm: func(a commands.TaskArgs) (commands.Result, error) {
			task, ok := m.findTaskDay(a.ID)
			if !ok {
				return commands.Result{}, taskNotFound(a.ID)
			}
			updated, _ := m.App.ToggleAlarm(task.Day, task.ID)
			return commands.Result{Message: alarmStatus(updated)}, nil
		},
		Delete: func(a commands.TaskArgs) (commands.Result, error) {
			task, ok := m.findTaskDay(a.ID)
			if !ok {
				return commands.Result{}, taskNotFound(a.ID)
			}
			m.App.DeleteTask(task.Day, task.ID)
			m.Trigger.Forget(task.ID)
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Text)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			day, parseErr := model.ParseWeekday(a.Day)
			if parseErr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown day: %s", a.Day)}
			}
			m.CurrentDay = day
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing %s", day)}, nil
		},
		Sound: func(a commands.SoundArgs) (commands.Result, error) {
			if a.Path == "" {
				m.App.ClearCustomSound()
				return commands.Result{Message: "alarm sound cleared"}, nil
			}
			m = m.registerSoundFile(a.Path)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) findTaskDay(id int64) (model.Task, bool) {
	return m.App.Store.FindAnywhere(id)
}

func taskNotFound(id int64) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %d", id)}
}
