package update

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/notify"
	"github.com/sandeepkv93/weekplan/internal/planner"
	"github.com/sandeepkv93/weekplan/internal/scheduler"
	"github.com/sandeepkv93/weekplan/internal/sound"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add      string
	Complete string
	Alarm    string
	Delete   string
	Settings string
	Help     string
	Quit     string
}

// AlarmState is the in-app alert modal. At most one is active; raising
// a new one replaces it and stops the previous sound.
type AlarmState struct {
	Active   bool
	TaskText string
	Silent   bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the bubbletea model. It renders whatever the planner App
// currently holds and routes every gesture through the App's
// operations; it never owns task state itself.
type Model struct {
	App      *planner.App
	Trigger  *scheduler.Trigger
	Engine   *scheduler.Engine
	Notifier notify.Notifier
	Player   sound.Player
	Log      *log.Logger

	CurrentDay model.Weekday
	Cursor     int
	AddMode    bool
	Settings   bool
	Alarm      AlarmState
	Palette    CommandPaletteState

	HelpVisible bool
	// Focused mirrors terminal focus; in-app alerts are suppressed
	// while the window is in the background.
	Focused bool

	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	TickInterval time.Duration

	now planner.NowFunc

	addTextInput   textinput.Model
	addTimeInput   textinput.Model
	soundPathInput textinput.Model
	commandInput   textinput.Model
	helpModel      help.Model
	addTimeFocused bool
}

type TickMsg struct {
	Now time.Time
}

type ReminderFiredMsg struct {
	Event scheduler.ReminderEvent
}

type DismissAlarmMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func NewModel(app *planner.App, engine *scheduler.Engine, notifier notify.Notifier, player sound.Player, logger *log.Logger, tick time.Duration, now planner.NowFunc) Model {
	if now == nil {
		now = time.Now
	}
	if tick <= 0 {
		tick = 20 * time.Second
	}
	m := Model{
		App:          app,
		Trigger:      scheduler.NewTrigger(app.Store),
		Engine:       engine,
		Notifier:     notifier,
		Player:       player,
		Log:          logger,
		CurrentDay:   model.CurrentWeekday(now()),
		Focused:      true,
		TickInterval: tick,
		now:          now,
		Keys: GlobalKeyMap{
			Add:      "a",
			Complete: " ",
			Alarm:    "b",
			Delete:   "x",
			Settings: "s",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initInputs()
	return m
}

func (m *Model) initInputs() {
	m.addTextInput = textinput.New()
	m.addTextInput.Placeholder = "what needs doing"
	m.addTextInput.CharLimit = 120

	m.addTimeInput = textinput.New()
	m.addTimeInput.Placeholder = "HH:MM"
	m.addTimeInput.CharLimit = 5

	m.soundPathInput = textinput.New()
	m.soundPathInput.Placeholder = "/path/to/sound"

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add monday 09:30 standup"

	m.helpModel = help.New()
}

func (m Model) logf(format string, args ...any) {
	if m.Log != nil {
		m.Log.Printf(format, args...)
	}
}
