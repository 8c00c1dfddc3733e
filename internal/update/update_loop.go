package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/session"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler == nil {
		return nil
	}
	m.scheduleCheckpoints()
	return waitForCheckpointCmd(m.Scheduler.C())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ensureCheckpoints()
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.Session.Mode {
		case session.ModeCommand:
			return m.handleCommandKey(typed), nil
		case session.ModeValue:
			return m.handleValueKey(typed), nil
		default:
			return m.handleNormalKey(typed)
		}
	case CheckpointMsg:
		m = m.onCheckpoint(typed.Event)
		if m.Scheduler == nil {
			return m, nil
		}
		return m, waitForCheckpointCmd(m.Scheduler.C())
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.Session
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m.quit()
	case key.Matches(msg, m.Keys.Up):
		s.MoveUp()
	case key.Matches(msg, m.Keys.Down):
		s.MoveDown()
	case key.Matches(msg, m.Keys.Left):
		m.trackWeek(s.MoveLeft)
	case key.Matches(msg, m.Keys.Right):
		m.trackWeek(s.MoveRight)
	case key.Matches(msg, m.Keys.PrevWeek):
		m.trackWeek(s.Tracker.PrevWeek)
	case key.Matches(msg, m.Keys.NextWeek):
		m.trackWeek(s.Tracker.NextWeek)
	case key.Matches(msg, m.Keys.Today):
		m.trackWeek(func() { s.Tracker.JumpTo(m.now()) })
	case key.Matches(msg, m.Keys.Mark):
		before := s.Mode
		if err := s.Mark(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			m.logger.Warn("mark failed", "err", err)
		} else if before == s.Mode && s.Selection.Active {
			m.Dirty = true
		}
	case key.Matches(msg, m.Keys.Command):
		s.EnterCommand()
		m.commandInput.SetValue("")
		m.commandInput.Focus()
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) handleCommandKey(msg tea.KeyMsg) Model {
	s := m.Session
	switch msg.Type {
	case tea.KeyEsc:
		s.Cancel()
		m.commandInput.Blur()
	case tea.KeyEnter:
		res := s.Submit()
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		m.logger.Debug("command", "outcome", res.Outcome, "message", res.Message)
		switch res.Outcome {
		case commands.OutcomeAdded, commands.OutcomeEdited, commands.OutcomeDeleted:
			m.Dirty = true
		}
		return m
	case tea.KeyBackspace:
		s.Backspace()
	case tea.KeySpace:
		s.Type([]rune{' '})
	case tea.KeyRunes:
		s.Type(msg.Runes)
	}
	m.commandInput.SetValue(s.Input)
	m.commandInput.CursorEnd()
	return m
}

func (m Model) handleValueKey(msg tea.KeyMsg) Model {
	s := m.Session
	var value rune
	switch {
	case msg.Type == tea.KeyEsc:
		s.Cancel()
		return m
	case msg.Type == tea.KeySpace:
		value = ' '
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		value = msg.Runes[0]
	default:
		return m
	}
	if err := s.SupplyValue(value); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("value entry failed", "err", err)
		return m
	}
	m.Dirty = true
	return m
}

// trackWeek runs move and marks the model dirty if the window shifted.
func (m *Model) trackWeek(move func()) {
	before := m.Session.Tracker.WeekStart
	move()
	if !m.Session.Tracker.WeekStart.Equal(before) {
		m.Dirty = true
	}
}

// quit saves unconditionally; a failed save is left in LastError for the
// caller to report after the program exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.save(); err != nil {
		m.LastError = err
	}
	m.Quitting = true
	if m.Scheduler != nil {
		m.Scheduler.Stop()
	}
	return m, tea.Quit
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	s := m.Session
	now := m.now()
	grid := views.RenderGrid(gridData(s, now))

	detail := ""
	if row, _, ok := s.Selected(); ok {
		h := s.Tracker.Habits[row]
		st := model.Summarize(h, now)
		detail = views.RenderStats(views.StatsData{
			Label:         h.Label,
			Type:          string(h.Type),
			CurrentStreak: st.CurrentStreak,
			LongestStreak: st.LongestStreak,
			WeekRate:      st.WeekRate,
			Total:         st.Total,
		})
	}

	status := m.Status.Text
	if m.Dirty && status == "" {
		status = "unsaved changes"
	}

	return views.RenderApp(views.AppData{
		Grid:        grid,
		CommandLine: views.RenderCommandLine(s.Mode.String(), m.commandInput.View(), s.Message),
		Detail:      detail,
		StatusLine:  status,
		StatusError: m.Status.IsError,
		HelpPanel:   m.renderHelpIfVisible(),
		Footer:      views.RenderModeLine(fmt.Sprintf("%s mode", s.Mode), m.helpModel.View(m.Keys)),
	})
}

func gridData(s *session.Session, now time.Time) views.GridData {
	values := s.Tracker.Values()
	rows := make([][]views.CellData, len(values))
	for i, row := range values {
		rows[i] = make([]views.CellData, len(row))
		for j, cell := range row {
			rows[i][j] = views.CellData{Value: cell.Value, Recorded: cell.Recorded}
		}
	}
	row, col, ok := s.Selected()
	return views.GridData{
		Month:        s.Tracker.Month(),
		Header:       s.Tracker.HeaderLabels(),
		Labels:       s.Tracker.Labels(),
		Rows:         rows,
		SelectedRow:  row,
		SelectedCol:  col,
		HasSelection: ok,
		TodayCol:     s.Tracker.TodayColumn(now),
	}
}
