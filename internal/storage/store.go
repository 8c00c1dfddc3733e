package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/habitd/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

type Store interface {
	Load(ctx context.Context) (*model.Tracker, error)
	Save(ctx context.Context, tracker *model.Tracker) error
	Close() error
}

// Open returns the backend named by kind rooted at path.
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case "", KindJSON:
		return NewJSONStore(path), nil
	case KindSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("storage: unknown store %q", kind)
	}
}

// LoadOrDefault never fails: a missing, unreadable or invalid state yields
// an empty tracker positioned on the current week.
func LoadOrDefault(ctx context.Context, store Store, now time.Time, firstDay time.Weekday, logger *log.Logger) *model.Tracker {
	tracker, err := store.Load(ctx)
	if err == nil {
		logger.Debug("state loaded", "habits", len(tracker.Habits), "week_start", model.DateKey(tracker.WeekStart))
		return tracker
	}
	if errors.Is(err, ErrNotFound) {
		logger.Info("no saved state, starting fresh")
	} else {
		logger.Warn("state unusable, starting fresh", "err", err)
	}
	return model.NewTracker(now, firstDay)
}
