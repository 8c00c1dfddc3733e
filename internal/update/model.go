package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/habitd/internal/logging"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/session"
	"github.com/sandeepkv93/habitd/internal/storage"
)

const saveTimeout = 5 * time.Second

type StatusBar struct {
	Text    string
	IsError bool
}

type Model struct {
	Session     *session.Session
	Store       storage.Store
	Scheduler   *scheduler.Engine
	Keys        KeyMap
	Status      StatusBar
	HelpVisible bool
	// Dirty is set by any change that a save would persist.
	Dirty     bool
	Quitting  bool
	LastError error

	logger       *log.Logger
	autosave     time.Duration
	now          func() time.Time
	dropped      uint64
	commandInput textinput.Model
	helpModel    help.Model
}

type Options struct {
	Store     storage.Store
	Scheduler *scheduler.Engine
	Logger    *log.Logger
	// Autosave is the checkpoint interval; zero disables autosave.
	Autosave time.Duration
	Now      func() time.Time
}

// CheckpointMsg carries a scheduler deadline into the update loop.
type CheckpointMsg struct {
	Event scheduler.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(tracker *model.Tracker, opts Options) Model {
	m := Model{
		Session:   session.New(tracker),
		Store:     opts.Store,
		Scheduler: opts.Scheduler,
		Keys:      DefaultKeyMap(),
		logger:    opts.Logger,
		autosave:  opts.Autosave,
		now:       opts.Now,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.commandInput = textinput.New()
	m.commandInput.Prompt = ": "
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48
	m.helpModel = help.New()
	return m
}
