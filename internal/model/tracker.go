package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysPerWeek is the width of the visible window.
const DaysPerWeek = 7

const headerCellWidth = 3

// Cell is one entry of the value matrix. Recorded is false when the habit
// has no record for that date.
type Cell struct {
	Value    string
	Recorded bool
}

// Tracker owns the ordered habits and the visible week window. WeekStart
// is always UTC midnight.
type Tracker struct {
	WeekStart time.Time
	Habits    []Habit
}

// NewTracker returns an empty tracker showing the week that contains now.
func NewTracker(now time.Time, firstDay time.Weekday) *Tracker {
	return &Tracker{
		WeekStart: StartOfWeek(now, firstDay),
		Habits:    []Habit{},
	}
}

// StartOfWeek returns UTC midnight of the most recent firstDay on or
// before t. With time.Monday this is the start of the ISO week.
func StartOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	day := Midnight(t)
	offset := (int(day.Weekday()) - int(firstDay) + DaysPerWeek) % DaysPerWeek
	return day.AddDate(0, 0, -offset)
}

func (t *Tracker) NextWeek() {
	t.WeekStart = t.WeekStart.AddDate(0, 0, DaysPerWeek)
}

func (t *Tracker) PrevWeek() {
	t.WeekStart = t.WeekStart.AddDate(0, 0, -DaysPerWeek)
}

// JumpTo moves the window to the week containing now, keeping the
// weekday the window currently starts on.
func (t *Tracker) JumpTo(now time.Time) {
	t.WeekStart = StartOfWeek(now, t.WeekStart.Weekday())
}

func (t *Tracker) DateRange() []time.Time {
	out := make([]time.Time, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		out = append(out, t.WeekStart.AddDate(0, 0, i))
	}
	return out
}

// HeaderLabels returns each day-of-month centred in a three column cell.
func (t *Tracker) HeaderLabels() []string {
	dates := t.DateRange()
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, center(strconv.Itoa(d.Day()), headerCellWidth))
	}
	return out
}

// Values is derived from the records on every call; it is never stored.
func (t *Tracker) Values() [][]Cell {
	dates := t.DateRange()
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = DateKey(d)
	}
	out := make([][]Cell, len(t.Habits))
	for i, habit := range t.Habits {
		row := make([]Cell, len(keys))
		for j, key := range keys {
			if v, ok := habit.Records[key]; ok {
				row[j] = Cell{Value: v, Recorded: true}
			}
		}
		out[i] = row
	}
	return out
}

func (t *Tracker) Labels() []string {
	out := make([]string, 0, len(t.Habits))
	for _, h := range t.Habits {
		out = append(out, h.Label)
	}
	return out
}

// Month names the month the window starts in.
func (t *Tracker) Month() string {
	return t.WeekStart.Month().String()
}

// TodayColumn returns the column of now's date, or -1 when now falls
// outside the window.
func (t *Tracker) TodayColumn(now time.Time) int {
	today := DateKey(now)
	for i, d := range t.DateRange() {
		if DateKey(d) == today {
			return i
		}
	}
	return -1
}

func (t *Tracker) AddHabit(label string, typ HabitType) {
	t.Habits = append(t.Habits, NewHabit(label, typ))
}

// RenameHabit reports false when index is out of range.
func (t *Tracker) RenameHabit(index int, label string) bool {
	if index < 0 || index >= len(t.Habits) {
		return false
	}
	t.Habits[index].Label = label
	return true
}

// DeleteHabit removes the habit at index; later rows shift up by one.
// It reports false when index is out of range.
func (t *Tracker) DeleteHabit(index int) bool {
	if index < 0 || index >= len(t.Habits) {
		return false
	}
	t.Habits = append(t.Habits[:index], t.Habits[index+1:]...)
	return true
}

// Mark records a value on the cell at (row, col) of the current window.
func (t *Tracker) Mark(row, col int, value string) error {
	if row < 0 || row >= len(t.Habits) {
		return fmt.Errorf("model: row %d out of range", row)
	}
	if col < 0 || col >= DaysPerWeek {
		return fmt.Errorf("model: column %d out of range", col)
	}
	key := DateKey(t.WeekStart.AddDate(0, 0, col))
	return t.Habits[row].Mark(key, value)
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
