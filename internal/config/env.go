package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays HABITD_* variables on base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("HABITD_STATE_FILE"); ok {
		cfg.StateFile = v
	}
	if v, ok := getEnv("HABITD_STORE"); ok {
		cfg.Store = v
	}
	if v, ok := getEnv("HABITD_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnv("HABITD_FIRST_WEEKDAY"); ok {
		cfg.FirstWeekday = v
	}
	if v, ok := getEnvInt("HABITD_AUTOSAVE_MINUTES"); ok && v >= 0 {
		cfg.AutosaveMinutes = v
	}
	if v, ok := getEnv("HABITD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("HABITD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("HABITD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
