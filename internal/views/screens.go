package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID         int64
	Text       string
	Time12     string
	IsComplete bool
	AlarmSet   bool
	Selected   bool
}

type DayPanelData struct {
	Day      string
	Rows     []TaskRowData
	AddView  string
	AddMode  bool
	TimeView string
}

type SettingsPanelData struct {
	SoundName string
	PathView  string
	Active    bool
}

type AlarmModalData struct {
	TaskText string
	Silent   bool
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s's Plan\n", data.Day))
	if data.AddMode {
		b.WriteString("new task: " + data.AddView + "\n")
		b.WriteString("time:     " + data.TimeView + "\n")
		b.WriteString("[enter] save  [esc] cancel\n")
	} else {
		b.WriteString("actions: [a]dd [space]complete [b]ell [x]delete [h/l]day [j/k]move\n")
	}

	if len(data.Rows) == 0 {
		b.WriteString("\n  A fresh start. Add a task to begin.")
		return strings.TrimSuffix(b.String(), "\n")
	}

	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		bell := " "
		if row.AlarmSet {
			bell = "!"
		}
		text := row.Text
		if row.IsComplete {
			text = completeStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s  %s\n", cursor, bell, row.Time12, text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderSettingsPanel(data SettingsPanelData) string {
	if !data.Active {
		return ""
	}
	sound := data.SoundName
	if sound == "" {
		sound = "(synthesized tone)"
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("alarm sound: " + sound + "\n")
	b.WriteString("load file:   " + data.PathView + "\n")
	b.WriteString("[enter] set  [c] clear  [esc] close")
	return b.String()
}

func RenderAlarmModal(data AlarmModalData) string {
	var b strings.Builder
	b.WriteString("TASK REMINDER\n\n")
	b.WriteString(data.TaskText + "\n\n")
	if data.Silent {
		b.WriteString("(sound unavailable)\n")
	}
	b.WriteString("[enter/esc] dismiss")
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}
