package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

func waitForCheckpointCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return CheckpointMsg{Event: ev}
	}
}

func (m Model) scheduleCheckpoints() {
	m.reschedule(scheduler.KindMidnight)
	if m.autosave > 0 {
		m.reschedule(scheduler.KindAutosave)
	}
}

func (m Model) reschedule(kind scheduler.Kind) {
	if m.Scheduler == nil {
		return
	}
	now := m.now()
	at := scheduler.NextMidnight(now)
	if kind == scheduler.KindAutosave {
		at = now.Add(m.autosave)
	}
	if err := m.Scheduler.Schedule(scheduler.Event{Kind: kind, At: at}); err != nil {
		m.logger.Warn("checkpoint not scheduled", "kind", kind, "err", err)
	}
}

// ensureCheckpoints rearms any kind whose chain broke. A checkpoint is only
// rescheduled when its event is received, so an event dropped on a full
// channel would otherwise end that kind for the rest of the session.
func (m *Model) ensureCheckpoints() {
	if m.Scheduler == nil {
		return
	}
	if dropped := m.Scheduler.Dropped(); dropped > m.dropped {
		m.logger.Warn("checkpoint events dropped", "count", dropped-m.dropped)
		m.dropped = dropped
		m.followToday()
	}
	if !m.Scheduler.IsPending(scheduler.KindMidnight) {
		m.reschedule(scheduler.KindMidnight)
	}
	if m.autosave > 0 && !m.Scheduler.IsPending(scheduler.KindAutosave) {
		m.reschedule(scheduler.KindAutosave)
	}
}

func (m Model) onCheckpoint(ev scheduler.Event) Model {
	switch ev.Kind {
	case scheduler.KindAutosave:
		if m.Dirty {
			if err := m.save(); err != nil {
				m.Status = StatusBar{Text: fmt.Sprintf("autosave failed: %v", err), IsError: true}
			} else {
				m.Dirty = false
				m.Status = StatusBar{Text: "autosaved"}
			}
		}
		m.reschedule(scheduler.KindAutosave)
	case scheduler.KindMidnight:
		m.followToday()
		m.reschedule(scheduler.KindMidnight)
	default:
		m.logger.Debug("unknown checkpoint", "kind", ev.Kind)
	}
	return m
}

// followToday keeps the window on the current week across a day rollover,
// but only when it was showing the day that just ended.
func (m *Model) followToday() {
	tr := m.Session.Tracker
	now := m.now()
	yesterday := model.Midnight(now).AddDate(0, 0, -1)
	if tr.TodayColumn(yesterday) >= 0 && tr.TodayColumn(now) < 0 {
		m.trackWeek(func() { tr.JumpTo(now) })
		m.logger.Info("day rollover, moved to the new week", "week_start", model.DateKey(tr.WeekStart))
	}
}

func (m Model) save() error {
	if m.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.Store.Save(ctx, m.Session.Tracker); err != nil {
		m.logger.Error("save failed", "err", err)
		return err
	}
	m.logger.Debug("state saved", "habits", len(m.Session.Tracker.Habits))
	return nil
}
