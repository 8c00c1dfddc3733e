package model

import (
	"sort"
	"time"
)

type Stats struct {
	CurrentStreak int
	LongestStreak int
	// WeekRate is the percentage of the last seven days, today included,
	// that carry a record.
	WeekRate float64
	Total    int
}

// Summarize computes streaks over recorded dates. A current streak is only
// alive if the most recent record is today or yesterday.
func Summarize(h Habit, now time.Time) Stats {
	days := make([]time.Time, 0, len(h.Records))
	for key := range h.Records {
		d, err := ParseDateKey(key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := Stats{Total: len(days)}
	if len(days) == 0 {
		return out
	}

	run := 1
	out.LongestStreak = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > out.LongestStreak {
			out.LongestStreak = run
		}
	}

	today := Midnight(now)
	// Records in the future do not extend the current streak.
	last := len(days) - 1
	for last >= 0 && days[last].After(today) {
		last--
	}
	if last >= 0 && !days[last].Before(today.AddDate(0, 0, -1)) {
		out.CurrentStreak = 1
		for i := last - 1; i >= 0; i-- {
			if !days[i].AddDate(0, 0, 1).Equal(days[i+1]) {
				break
			}
			out.CurrentStreak++
		}
	}

	done := 0
	for i := 0; i < DaysPerWeek; i++ {
		if _, ok := h.Records[DateKey(today.AddDate(0, 0, -i))]; ok {
			done++
		}
	}
	out.WeekRate = float64(done) / float64(DaysPerWeek) * 100
	return out
}
