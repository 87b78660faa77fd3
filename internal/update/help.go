package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/weekplan/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# weekplan

Assign tasks to weekdays with a time, toggle the bell to get a
reminder, and mark tasks done as you go. Reminders arrive as an
in-app alert while the planner is focused and as a desktop
notification otherwise.

Palette commands: add, done, alarm, del, show, sound.`

func (m Model) renderHelpView() string {
	bindings := m.keyBindings()
	short := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		short = append(short, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	parts := []string{
		views.RenderMarkdown(helpMarkdown),
		m.helpModel.View(helpKeyMap{short: short, full: [][]key.Binding{short}}),
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "h/l", Action: "previous/next day"},
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: "space", Action: "toggle complete"},
		{Key: m.Keys.Alarm, Action: "toggle alarm"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: m.Keys.Settings, Action: "alarm sound settings"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}
