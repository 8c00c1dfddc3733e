package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidHabitType = errors.New("model: invalid habit type")
	ErrInvalidValue     = errors.New("model: invalid record value")
	ErrCorruptRecord    = errors.New("model: corrupt record")
)

type HabitType string

const (
	HabitBoolean   HabitType = "Boolean"
	HabitCounter   HabitType = "Counter"
	HabitCharacter HabitType = "Character"
)

// DoneValue is stored for Boolean records. Only presence is meaningful.
const DoneValue = "true"

const dateKeyLayout = "2006-01-02"

// legacyDateKeyLayout matches keys written by older state files, which
// used the full UTC timestamp of the day.
const legacyDateKeyLayout = "2006-01-02 15:04:05 MST"

func (h HabitType) IsValid() bool {
	switch h {
	case HabitBoolean, HabitCounter, HabitCharacter:
		return true
	default:
		return false
	}
}

// ParseHabitType accepts the canonical names and the legacy BIT/COUNT/ALPHA
// spellings.
func ParseHabitType(raw string) (HabitType, error) {
	switch strings.TrimSpace(raw) {
	case string(HabitBoolean), "BIT":
		return HabitBoolean, nil
	case string(HabitCounter), "COUNT":
		return HabitCounter, nil
	case string(HabitCharacter), "ALPHA":
		return HabitCharacter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHabitType, raw)
	}
}

// DateKey is the single formatter for record keys. Both the write path
// (Mark) and the read path (Values, stats) go through it.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// ParseDateKey parses a canonical key and the legacy timestamp and RFC3339
// forms. The result is UTC midnight.
func ParseDateKey(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{dateKeyLayout, legacyDateKeyLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("model: invalid date key %q", raw)
}

// Midnight truncates t to the start of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Habit struct {
	Label   string
	Type    HabitType
	Records map[string]string
}

func NewHabit(label string, typ HabitType) Habit {
	return Habit{
		Label:   label,
		Type:    typ,
		Records: make(map[string]string),
	}
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Label) == "" {
		return errors.New("model: habit label is required")
	}
	if !h.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidHabitType, h.Type)
	}
	for key, value := range h.Records {
		if _, err := time.Parse(dateKeyLayout, key); err != nil {
			return fmt.Errorf("%w: key %q", ErrCorruptRecord, key)
		}
		switch h.Type {
		case HabitCounter:
			if n, err := strconv.Atoi(value); err != nil || n < 0 {
				return fmt.Errorf("%w: counter %s=%q", ErrCorruptRecord, key, value)
			}
		case HabitCharacter:
			if utf8.RuneCountInString(value) != 1 {
				return fmt.Errorf("%w: character %s=%q", ErrCorruptRecord, key, value)
			}
		}
	}
	return nil
}

func (h Habit) Value(key string) (string, bool) {
	v, ok := h.Records[key]
	return v, ok
}

// Mark records a value for the given date key according to the habit type:
// Boolean toggles, Counter starts at "0" and increments, Character stores
// value verbatim. value is ignored except for Character habits.
func (h *Habit) Mark(key string, value string) error {
	if h.Records == nil {
		h.Records = make(map[string]string)
	}
	existing, ok := h.Records[key]
	switch h.Type {
	case HabitBoolean:
		if ok {
			delete(h.Records, key)
			return nil
		}
		h.Records[key] = DoneValue
	case HabitCounter:
		if !ok {
			h.Records[key] = "0"
			return nil
		}
		n, err := strconv.Atoi(existing)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: counter %s=%q", ErrCorruptRecord, key, existing)
		}
		h.Records[key] = strconv.Itoa(n + 1)
	case HabitCharacter:
		if utf8.RuneCountInString(value) != 1 {
			return fmt.Errorf("%w: want a single character, got %q", ErrInvalidValue, value)
		}
		h.Records[key] = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHabitType, h.Type)
	}
	return nil
}
