// Package session holds the transient cursor and input-mode state that
// sits between key events and the tracker.
package session

import (
	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/model"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeValue
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeValue:
		return "VALUE"
	default:
		return "NORMAL"
	}
}

// Selection is unset until the first cursor movement.
type Selection struct {
	Row    int
	Col    int
	Active bool
}

type Session struct {
	Tracker   *model.Tracker
	Selection Selection
	Mode      Mode
	Input     string
	// Message replaces the command line after a command, usually an error
	// hint. It is cleared when command mode is entered again.
	Message string
	IsError bool

	// pending is the cell a ValueEntry will write to.
	pending Selection
}

func New(tracker *model.Tracker) *Session {
	return &Session{Tracker: tracker}
}

func (s *Session) Selected() (row, col int, ok bool) {
	if !s.Selection.Active {
		return 0, 0, false
	}
	return s.Selection.Row, s.Selection.Col, true
}

func (s *Session) selectCell(row, col int) {
	s.Selection = Selection{Row: row, Col: col, Active: true}
}

// MoveDown wraps from the last row to row 0. It needs at least two habits.
func (s *Session) MoveDown() {
	n := len(s.Tracker.Habits)
	if n < 2 {
		return
	}
	row, col, ok := s.Selected()
	if !ok {
		s.selectCell(0, 0)
		return
	}
	s.selectCell((row+1)%n, col)
}

// MoveUp wraps from row 0 to the last row. It needs at least two habits.
func (s *Session) MoveUp() {
	n := len(s.Tracker.Habits)
	if n < 2 {
		return
	}
	row, col, ok := s.Selected()
	if !ok {
		s.selectCell(0, 0)
		return
	}
	s.selectCell((row-1+n)%n, col)
}

// MoveRight past the last column advances the week and lands on column 0.
func (s *Session) MoveRight() {
	if len(s.Tracker.Habits) == 0 {
		return
	}
	row, col, ok := s.Selected()
	if !ok {
		s.selectCell(0, 0)
		return
	}
	if col == model.DaysPerWeek-1 {
		s.Tracker.NextWeek()
		s.selectCell(row, 0)
		return
	}
	s.selectCell(row, col+1)
}

// MoveLeft before column 0 retreats the week and lands on the last column.
func (s *Session) MoveLeft() {
	if len(s.Tracker.Habits) == 0 {
		return
	}
	row, col, ok := s.Selected()
	if !ok {
		s.selectCell(0, 0)
		return
	}
	if col == 0 {
		s.Tracker.PrevWeek()
		s.selectCell(row, model.DaysPerWeek-1)
		return
	}
	s.selectCell(row, col-1)
}

// Mark acts on the selected cell. Character habits switch to ValueEntry
// and wait for SupplyValue; the other types are marked immediately.
func (s *Session) Mark() error {
	row, col, ok := s.Selected()
	if !ok || s.Mode != ModeNormal {
		return nil
	}
	if s.Tracker.Habits[row].Type == model.HabitCharacter {
		s.pending = s.Selection
		s.Input = ""
		s.Mode = ModeValue
		return nil
	}
	return s.Tracker.Mark(row, col, "")
}

// SupplyValue completes a ValueEntry with a single character.
func (s *Session) SupplyValue(r rune) error {
	if s.Mode != ModeValue {
		return nil
	}
	target := s.pending
	s.Mode = ModeNormal
	s.Input = ""
	s.pending = Selection{}
	return s.Tracker.Mark(target.Row, target.Col, string(r))
}

func (s *Session) EnterCommand() {
	if s.Mode != ModeNormal {
		return
	}
	s.Input = ""
	s.Message = ""
	s.IsError = false
	s.Mode = ModeCommand
}

// Cancel drops whatever is being typed and returns to Normal without
// touching the tracker.
func (s *Session) Cancel() {
	s.Input = ""
	s.pending = Selection{}
	s.Mode = ModeNormal
}

func (s *Session) Type(runes []rune) {
	if s.Mode != ModeCommand {
		return
	}
	s.Input += string(runes)
}

func (s *Session) Backspace() {
	if s.Mode != ModeCommand || s.Input == "" {
		return
	}
	r := []rune(s.Input)
	s.Input = string(r[:len(r)-1])
}

// Submit runs the command buffer against the tracker and returns to
// Normal. Errors are left in Message.
func (s *Session) Submit() commands.Result {
	if s.Mode != ModeCommand {
		return commands.Result{Outcome: commands.OutcomeIgnored}
	}
	res := commands.Run(s.Tracker, s.Input)
	s.Input = ""
	s.Mode = ModeNormal
	s.Message = res.Message
	s.IsError = res.Outcome == commands.OutcomeError
	s.clampSelection()
	return res
}

// clampSelection keeps the row inside the habit list after deletes.
func (s *Session) clampSelection() {
	if !s.Selection.Active {
		return
	}
	n := len(s.Tracker.Habits)
	if n == 0 {
		s.Selection = Selection{}
		return
	}
	if s.Selection.Row >= n {
		s.Selection.Row = n - 1
	}
}
