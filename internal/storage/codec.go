package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Encode renders the tracker in the canonical state format. Legacy fields
// are never written.
func Encode(tracker *model.Tracker) ([]byte, error) {
	if tracker == nil {
		return nil, fmt.Errorf("storage: nil tracker")
	}
	weekStart := model.Midnight(tracker.WeekStart)
	doc := stateDocument{
		WeekStart: &weekStart,
		Habits:    make([]habitDocument, 0, len(tracker.Habits)),
	}
	for _, h := range tracker.Habits {
		records := make(map[string]string, len(h.Records))
		for k, v := range h.Records {
			records[k] = v
		}
		doc.Habits = append(doc.Habits, habitDocument{
			Label:     h.Label,
			HabitType: string(h.Type),
			Records:   records,
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode validates data against the state schema and builds a tracker,
// folding any legacy fields into the current shape.
func Decode(data []byte) (*model.Tracker, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	var weekStart time.Time
	switch {
	case doc.WeekStart != nil:
		weekStart = *doc.WeekStart
	case doc.StartDate != nil:
		weekStart = *doc.StartDate
	}
	tracker := &model.Tracker{
		WeekStart: model.Midnight(weekStart),
		Habits:    make([]model.Habit, 0, len(doc.Habits)),
	}
	for i, hd := range doc.Habits {
		habit, err := migrateHabit(hd)
		if err != nil {
			return nil, fmt.Errorf("habit %d: %w", i, err)
		}
		tracker.Habits = append(tracker.Habits, habit)
	}
	return tracker, nil
}

// migrateHabit merges done_dates, then stats, then records into one map.
// Later sources win for the same day. The oldest files carry only a label
// and done_dates, so a missing habit_type means Boolean.
func migrateHabit(hd habitDocument) (model.Habit, error) {
	typ := model.HabitBoolean
	if hd.HabitType != "" {
		parsed, err := model.ParseHabitType(hd.HabitType)
		if err != nil {
			return model.Habit{}, err
		}
		typ = parsed
	}
	habit := model.NewHabit(hd.Label, typ)

	// done_dates only ever meant "done"; on Counter and Character habits
	// there is no value to give them, so they are discarded.
	if typ == model.HabitBoolean {
		for _, raw := range hd.DoneDates {
			key, err := normalizeKey(raw)
			if err != nil {
				return model.Habit{}, err
			}
			habit.Records[key] = model.DoneValue
		}
	}
	for _, src := range []map[string]string{hd.Stats, hd.Records} {
		keys := make([]string, 0, len(src))
		for k := range src {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, raw := range keys {
			key, err := normalizeKey(raw)
			if err != nil {
				return model.Habit{}, err
			}
			habit.Records[key] = src[raw]
		}
	}
	if err := habit.Validate(); err != nil {
		return model.Habit{}, err
	}
	return habit, nil
}

func normalizeKey(raw string) (string, error) {
	day, err := model.ParseDateKey(raw)
	if err != nil {
		return "", err
	}
	return model.DateKey(day), nil
}
