package model

import (
	"math"
	"testing"
	"time"
)

func TestSummarizeStreaks(t *testing.T) {
	now := time.Date(2026, 2, 12, 20, 0, 0, 0, time.UTC)
	h := NewHabit("Read", HabitBoolean)
	for _, k := range []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-02-10", "2026-02-11"} {
		h.Records[k] = DoneValue
	}

	s := Summarize(h, now)
	if s.Total != 6 {
		t.Fatalf("expected total 6, got %d", s.Total)
	}
	if s.LongestStreak != 4 {
		t.Fatalf("expected longest 4, got %d", s.LongestStreak)
	}
	if s.CurrentStreak != 2 {
		t.Fatalf("expected current 2 (ending yesterday), got %d", s.CurrentStreak)
	}
	want := 2.0 / 7.0 * 100
	if math.Abs(s.WeekRate-want) > 1e-9 {
		t.Fatalf("expected week rate %.2f, got %.2f", want, s.WeekRate)
	}
}

func TestSummarizeBrokenStreak(t *testing.T) {
	now := time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC)
	h := NewHabit("Read", HabitBoolean)
	h.Records["2026-02-09"] = DoneValue
	h.Records["2026-02-20"] = DoneValue

	s := Summarize(h, now)
	if s.CurrentStreak != 0 {
		t.Fatalf("expected no current streak, got %d", s.CurrentStreak)
	}
	if s.LongestStreak != 1 {
		t.Fatalf("expected longest 1, got %d", s.LongestStreak)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(NewHabit("x", HabitCounter), time.Now())
	if s != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", s)
	}
}
