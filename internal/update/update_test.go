package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/session"
)

var thursday = time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

type fakeStore struct {
	saves int
	last  *model.Tracker
	err   error
}

func (f *fakeStore) Load(context.Context) (*model.Tracker, error) { return f.last, nil }

func (f *fakeStore) Save(_ context.Context, tr *model.Tracker) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	f.last = tr
	return nil
}

func (f *fakeStore) Close() error { return nil }

func newTestModel(store *fakeStore, now time.Time) Model {
	return NewModel(model.NewTracker(thursday, time.Monday), Options{
		Store:    store,
		Autosave: time.Minute,
		Now:      func() time.Time { return now },
	})
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

// typeLine sends line one key at a time, as a terminal would.
func typeLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	for _, r := range line {
		if r == ' ' {
			m = press(t, m, "space")
			continue
		}
		m = press(t, m, string(r))
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	if m.Session.Mode != session.ModeNormal {
		t.Fatalf("expected normal mode, got %s", m.Session.Mode)
	}
	if m.HelpVisible || m.Dirty || m.Quitting {
		t.Fatalf("unexpected initial flags: %+v", m)
	}
	if got := m.Keys.Quit.Keys(); len(got) == 0 || got[0] != "q" {
		t.Fatalf("expected quit key q, got %v", got)
	}
}

func TestCommandFlowAddsAndMarksCounter(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":")
	if m.Session.Mode != session.ModeCommand {
		t.Fatalf("expected command mode, got %s", m.Session.Mode)
	}
	m = typeLine(t, m, "add 'Drink Water' 8")
	if m.Session.Input != "add 'Drink Water' 8" {
		t.Fatalf("unexpected input buffer %q", m.Session.Input)
	}
	m = press(t, m, "enter")
	if len(m.Session.Tracker.Habits) != 1 || m.Session.Tracker.Habits[0].Type != model.HabitCounter {
		t.Fatalf("expected one counter habit, got %#v", m.Session.Tracker.Habits)
	}
	if !m.Dirty {
		t.Fatal("expected dirty after add")
	}

	m = press(t, m, "l", "space", "space")
	if got := m.Session.Tracker.Values()[0][0]; got.Value != "1" {
		t.Fatalf("expected counter 1 at (0,0), got %+v", got)
	}
}

func TestValueEntryRecordsCharacter(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":")
	m = typeLine(t, m, "add Mood x")
	m = press(t, m, "enter", "l", "l", "space")
	if m.Session.Mode != session.ModeValue {
		t.Fatalf("expected value mode, got %s", m.Session.Mode)
	}
	if !strings.Contains(m.View(), "esc to cancel") {
		t.Fatal("expected value prompt in view")
	}
	m = press(t, m, "z")
	if m.Session.Mode != session.ModeNormal {
		t.Fatalf("expected normal mode, got %s", m.Session.Mode)
	}
	if got := m.Session.Tracker.Values()[0][1]; got.Value != "z" {
		t.Fatalf("expected z at (0,1), got %+v", got)
	}
}

func TestEscCancelsInputModes(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":")
	m = typeLine(t, m, "add Run")
	m = press(t, m, "backspace", "esc")
	if m.Session.Mode != session.ModeNormal || len(m.Session.Tracker.Habits) != 0 || m.Dirty {
		t.Fatalf("cancel must not run the command: mode=%s habits=%d", m.Session.Mode, len(m.Session.Tracker.Habits))
	}
}

func TestCommandErrorShownOnCommandLine(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":")
	m = typeLine(t, m, "delete")
	m = press(t, m, "enter")
	if !m.Session.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(m.View(), "delete 1") {
		t.Fatalf("expected delete hint in view:\n%s", m.View())
	}
	if m.Dirty {
		t.Fatal("failed command must not mark dirty")
	}
}

func TestWeekNavigationKeys(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	start := m.Session.Tracker.WeekStart
	m = press(t, m, "]")
	if !m.Session.Tracker.WeekStart.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("expected next week, got %s", m.Session.Tracker.WeekStart)
	}
	m = press(t, m, "[", "[")
	if !m.Session.Tracker.WeekStart.Equal(start.AddDate(0, 0, -7)) {
		t.Fatalf("expected previous week, got %s", m.Session.Tracker.WeekStart)
	}
	m = press(t, m, "t")
	if !m.Session.Tracker.WeekStart.Equal(start) {
		t.Fatalf("expected current week, got %s", m.Session.Tracker.WeekStart)
	}
	if !m.Dirty {
		t.Fatal("week change should mark dirty")
	}
}

func TestQuitSavesState(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store, thursday)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit command")
	}
	if store.saves != 1 || next.LastError != nil {
		t.Fatalf("expected one save, got %d (err=%v)", store.saves, next.LastError)
	}
	if next.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestQuitReportsSaveFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := newTestModel(store, thursday)
	m = press(t, m, ":")
	m = press(t, m, "ctrl+c")
	if !m.Quitting || m.LastError == nil || m.LastError.Error() != "disk full" {
		t.Fatalf("expected save error recorded, got quitting=%v err=%v", m.Quitting, m.LastError)
	}
}

func TestTypingQInCommandModeDoesNotQuit(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":", "q")
	if m.Quitting || m.Session.Input != "q" {
		t.Fatalf("q should be typed, got quitting=%v input=%q", m.Quitting, m.Session.Input)
	}
}

func TestAutosaveCheckpoint(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store, thursday)
	updated, _ := m.Update(CheckpointMsg{Event: scheduler.Event{Kind: scheduler.KindAutosave, At: thursday}})
	m = updated.(Model)
	if store.saves != 0 {
		t.Fatal("clean state must not be saved")
	}
	m = press(t, m, "]")
	updated, _ = m.Update(CheckpointMsg{Event: scheduler.Event{Kind: scheduler.KindAutosave, At: thursday}})
	m = updated.(Model)
	if store.saves != 1 || m.Dirty {
		t.Fatalf("expected one autosave and clean state, got saves=%d dirty=%v", store.saves, m.Dirty)
	}
	if m.Status.Text != "autosaved" {
		t.Fatalf("unexpected status %+v", m.Status)
	}

	store.err = errors.New("read-only")
	m = press(t, m, "[")
	updated, _ = m.Update(CheckpointMsg{Event: scheduler.Event{Kind: scheduler.KindAutosave, At: thursday}})
	m = updated.(Model)
	if !m.Status.IsError || !m.Dirty {
		t.Fatalf("expected failed autosave to keep dirty state, got %+v dirty=%v", m.Status, m.Dirty)
	}
}

func TestMidnightCheckpointFollowsToday(t *testing.T) {
	monday := time.Date(2026, 2, 16, 0, 0, 5, 0, time.UTC)
	m := newTestModel(&fakeStore{}, monday)
	updated, _ := m.Update(CheckpointMsg{Event: scheduler.Event{Kind: scheduler.KindMidnight, At: monday}})
	m = updated.(Model)
	if !m.Session.Tracker.WeekStart.Equal(time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected window to follow today, got %s", m.Session.Tracker.WeekStart)
	}

	m = press(t, m, "[", "[")
	browsing := m.Session.Tracker.WeekStart
	updated, _ = m.Update(CheckpointMsg{Event: scheduler.Event{Kind: scheduler.KindMidnight, At: monday}})
	m = updated.(Model)
	if !m.Session.Tracker.WeekStart.Equal(browsing) {
		t.Fatal("window showing another week must not move")
	}
}

func TestInitSchedulesCheckpoints(t *testing.T) {
	engine := scheduler.NewEngine(4)
	engine.Start()
	defer engine.Stop()
	m := NewModel(model.NewTracker(thursday, time.Monday), Options{
		Scheduler: engine,
		Autosave:  time.Hour,
		Now:       time.Now,
	})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected wait command")
	}
	if got := engine.Pending(); got != 2 {
		t.Fatalf("expected autosave and midnight pending, got %d", got)
	}
}

func TestUpdateRearmsCancelledCheckpoint(t *testing.T) {
	engine := scheduler.NewEngine(4)
	m := NewModel(model.NewTracker(thursday, time.Monday), Options{
		Scheduler: engine,
		Autosave:  time.Hour,
		Now:       func() time.Time { return thursday },
	})
	m.Init()
	engine.Cancel(scheduler.KindAutosave)

	m = press(t, m, "l")
	if !engine.IsPending(scheduler.KindAutosave) || !engine.IsPending(scheduler.KindMidnight) {
		t.Fatalf("expected both checkpoints pending, got %d", engine.Pending())
	}
}

func TestUpdateRearmsAfterDroppedCheckpoints(t *testing.T) {
	engine := scheduler.NewEngine(1)
	engine.Start()
	defer engine.Stop()
	m := NewModel(model.NewTracker(thursday, time.Monday), Options{
		Scheduler: engine,
		Autosave:  time.Hour,
		Now:       time.Now,
	})
	m.Init()

	// Both fire at once into a one-slot channel nobody reads.
	at := time.Now().Add(10 * time.Millisecond)
	for _, kind := range []scheduler.Kind{scheduler.KindAutosave, scheduler.KindMidnight} {
		if err := engine.Schedule(scheduler.Event{Kind: kind, At: at}); err != nil {
			t.Fatalf("schedule %s: %v", kind, err)
		}
	}
	deadline := time.Now().Add(time.Second)
	for engine.Dropped() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected a dropped checkpoint")
		}
		time.Sleep(5 * time.Millisecond)
	}

	m = press(t, m, "l")
	if !engine.IsPending(scheduler.KindAutosave) || !engine.IsPending(scheduler.KindMidnight) {
		t.Fatalf("expected both checkpoints rearmed, got %d pending", engine.Pending())
	}
	if m.dropped != engine.Dropped() {
		t.Fatalf("dropped = %d, want %d", m.dropped, engine.Dropped())
	}
}

func TestViewShowsGridAndHelp(t *testing.T) {
	m := newTestModel(&fakeStore{}, thursday)
	m = press(t, m, ":")
	m = typeLine(t, m, "add Read")
	m = press(t, m, "enter", "l")
	view := m.View()
	for _, want := range []string{"February", "0 Read", "NORMAL mode", "streak:"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	m = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "delete") {
		t.Fatalf("expected help panel:\n%s", m.View())
	}
}
