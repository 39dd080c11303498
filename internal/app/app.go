// internal/app/app.go
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/journal"
	"github.com/llehouerou/phototriage/internal/keymap"
	"github.com/llehouerou/phototriage/internal/notify"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui/headerbar"
	"github.com/llehouerou/phototriage/internal/ui/mediaview"
	"github.com/llehouerou/phototriage/internal/ui/preview"
	"github.com/llehouerou/phototriage/internal/ui/shortcutlist"
	"github.com/llehouerou/phototriage/internal/ui/toast"
)

const defaultTimeout = 30 * time.Second

// Deps are the services the model drives.
type Deps struct {
	Media    MediaSource
	Registry *shortcut.Registry
	Journal  journal.Interface // nil disables the journal
	Notifier notify.Notifier   // nil sends no desktop notification
	Preview  *preview.Renderer // nil disables image previews
	Rand     session.Rand      // nil uses session.DefaultRand
}

// Options configure a run.
type Options struct {
	Mode          session.Mode
	IDs           []string // picked media ids; a session starts right away when set
	Timeout       time.Duration
	ToastDuration time.Duration
}

// Model is the root application model containing all state.
type Model struct {
	media    MediaSource
	registry *shortcut.Registry
	journal  journal.Interface
	notifier notify.Notifier
	preview  *preview.Renderer
	rand     session.Rand

	mode      session.Mode
	ids       []string
	autoStart bool
	timeout   time.Duration

	view      View
	list      shortcutlist.Model
	mediaView mediaview.Model
	toast     toast.Model
	help      help.Model
	popups    PopupManager
	settings  *keymap.Resolver
	sessKeys  *keymap.Resolver
	offline   bool

	// Session. gen changes every time a session starts or is left.
	machine   session.Machine
	gen       int
	journalID string
	counts    *headerbar.Counts

	// Terminal image output waiting to be written with the next frames.
	imageOut string
	imageSeq int

	width  int
	height int
}

// New creates the root model.
func New(deps Deps, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	m := Model{
		media:     deps.Media,
		registry:  deps.Registry,
		journal:   deps.Journal,
		notifier:  deps.Notifier,
		preview:   deps.Preview,
		rand:      deps.Rand,
		mode:      opts.Mode,
		ids:       opts.IDs,
		autoStart: len(opts.IDs) > 0,
		timeout:   opts.Timeout,
		view:      ViewSettings,
		list:      shortcutlist.New(),
		mediaView: mediaview.New(),
		toast:     toast.New(opts.ToastDuration),
		help:      help.New(),
		popups:    NewPopupManager(),
		settings:  keymap.NewResolver(keymap.ContextSettings),
		sessKeys:  keymap.NewResolver(keymap.ContextSession),
	}
	if m.autoStart {
		m.view = ViewSession
		m.gen = 1
		m.mediaView.SetState(session.Loading)
	}
	return m
}

// Init implements tea.Model. The shortcut list is loaded first; with picked
// ids the load opens the session directly.
func (m Model) Init() tea.Cmd {
	return m.loadSettingsCmd(m.autoStart)
}

// ActiveView returns the active screen.
func (m Model) ActiveView() View {
	return m.view
}

// Machine returns the running session state.
func (m Model) Machine() session.Machine {
	return m.machine
}
