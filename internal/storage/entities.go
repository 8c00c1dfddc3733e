package storage

import "time"

// stateDocument is the on-disk JSON shape. StartDate, Stats and DoneDates
// are only read, for files written by older versions; they are folded into
// WeekStart and Records at load time and never written back.
type stateDocument struct {
	WeekStart *time.Time      `json:"week_start,omitempty"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	Habits    []habitDocument `json:"habits"`
}

type habitDocument struct {
	Label     string            `json:"label"`
	HabitType string            `json:"habit_type"`
	Records   map[string]string `json:"records"`
	Stats     map[string]string `json:"stats,omitempty"`
	DoneDates []string          `json:"done_dates,omitempty"`
}
