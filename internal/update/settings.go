package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/weekplan/internal/views"
)

// handleSettingsKey drives the settings panel: type a file path and
// enter to register it as the alarm sound, c to clear.
func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Settings = false
		m.soundPathInput.Blur()
		return m
	case "c":
		if m.soundPathInput.Value() == "" {
			m.App.ClearCustomSound()
			m.Status = StatusBar{Text: "alarm sound cleared"}
			return m
		}
	case "enter":
		path := strings.TrimSpace(m.soundPathInput.Value())
		m.Settings = false
		m.soundPathInput.Blur()
		if path == "" {
			return m
		}
		return m.registerSoundFile(path)
	}

	var cmd tea.Cmd
	m.soundPathInput, cmd = m.soundPathInput.Update(msg)
	_ = cmd
	return m
}

// registerSoundFile loads the file into the registry as-is. The
// payload is not validated; a bad file surfaces at playback and the
// alert falls back to visual-only.
func (m Model) registerSoundFile(path string) Model {
	data, err := os.ReadFile(path)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("read sound file: %v", err), IsError: true}
		return m
	}
	name := filepath.Base(path)
	m.App.SetCustomSound(name, data)
	m.Status = StatusBar{Text: fmt.Sprintf("alarm sound set: %s", name)}
	return m
}

func (m Model) renderSettingsPanel() string {
	name := ""
	if s, ok := m.App.Sounds.Current(); ok {
		name = s.Name
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Active:    true,
		SoundName: name,
		PathView:  m.soundPathInput.View(),
	})
}
