// Package config assembles runtime settings from defaults, an optional
// TOML file, HABITD_* environment variables and command-line flags, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

const appName = "habitd"

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	StateFile       string `toml:"state_file"`
	Store           string `toml:"store"`
	DBPath          string `toml:"db_path"`
	FirstWeekday    string `toml:"first_weekday"`
	AutosaveMinutes int    `toml:"autosave_minutes"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	SchedulerBuffer int    `toml:"scheduler_buffer"`

	// ConfigFile is the TOML file that was applied, if any.
	ConfigFile string `toml:"-"`
}

// Default places every file under <user config dir>/habitd.
func Default() Config {
	return defaultsIn(configDir())
}

func defaultsIn(dir string) Config {
	return Config{
		StateFile:       filepath.Join(dir, appName+".json"),
		Store:           StoreJSON,
		DBPath:          filepath.Join(dir, appName+".db"),
		FirstWeekday:    "monday",
		AutosaveMinutes: 5,
		LogLevel:        "info",
		LogFile:         filepath.Join(dir, appName+".log"),
		SchedulerBuffer: 16,
	}
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		return "." + appName
	}
	return filepath.Join(base, appName)
}

func defaultConfigFile(dir string) string {
	return filepath.Join(dir, appName+".toml")
}

type flagValues struct {
	config       string
	stateFile    string
	store        string
	db           string
	firstWeekday string
	autosave     int
	logLevel     string
	logFile      string
}

// newFlagSet leaves every default empty; only flags the user passed
// override the lower layers.
func newFlagSet(fv *flagValues, out io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.StringVar(&fv.config, "config", "", "path to a TOML config file")
	flags.StringVar(&fv.stateFile, "state-file", "", "path to the JSON state file")
	flags.StringVar(&fv.store, "store", "", "state backend: json or sqlite")
	flags.StringVar(&fv.db, "db", "", "path to the SQLite database")
	flags.StringVar(&fv.firstWeekday, "first-weekday", "", "weekday the grid starts on")
	flags.IntVar(&fv.autosave, "autosave", 0, "autosave interval in minutes, 0 disables")
	flags.StringVar(&fv.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&fv.logFile, "log-file", "", "path to the log file")
	return flags
}

// Load builds the configuration for args (without the program name).
// pflag.ErrHelp is returned unwrapped when --help was requested.
func Load(args []string, usage io.Writer) (Config, error) {
	return load(args, usage, configDir())
}

func load(args []string, usage io.Writer, dir string) (Config, error) {
	var fv flagValues
	flags := newFlagSet(&fv, usage)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if extra := flags.Args(); len(extra) > 0 {
		return Config{}, fmt.Errorf("config: unexpected argument %q", extra[0])
	}

	cfg := defaultsIn(dir)

	path, explicit := fv.config, true
	if path == "" {
		path = strings.TrimSpace(os.Getenv("HABITD_CONFIG"))
	}
	if path == "" {
		path, explicit = defaultConfigFile(dir), false
	}
	if err := applyFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	} else {
		cfg.ConfigFile = path
	}

	cfg = FromEnv(cfg)

	if flags.Changed("state-file") {
		cfg.StateFile = fv.stateFile
	}
	if flags.Changed("store") {
		cfg.Store = fv.store
	}
	if flags.Changed("db") {
		cfg.DBPath = fv.db
	}
	if flags.Changed("first-weekday") {
		cfg.FirstWeekday = fv.firstWeekday
	}
	if flags.Changed("autosave") {
		cfg.AutosaveMinutes = fv.autosave
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = fv.logFile
	}

	cfg.Store = normalizeStore(cfg.Store)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalizeStore folds the store kind once every layer has been applied,
// so HABITD_STORE, --store and the file's store key compare the same way.
func normalizeStore(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func applyFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreJSON:
		if strings.TrimSpace(c.StateFile) == "" {
			return errors.New("config: state_file is required for the json store")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: db_path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if _, err := c.Weekday(); err != nil {
		return err
	}
	if c.AutosaveMinutes < 0 {
		return fmt.Errorf("config: autosave_minutes must be >= 0, got %d", c.AutosaveMinutes)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be > 0, got %d", c.SchedulerBuffer)
	}
	return nil
}

// StorePath is the location of the active backend.
func (c Config) StorePath() string {
	if c.Store == StoreSQLite {
		return c.DBPath
	}
	return c.StateFile
}

// Weekday accepts full English names and three-letter abbreviations.
func (c Config) Weekday() (time.Weekday, error) {
	raw := strings.ToLower(strings.TrimSpace(c.FirstWeekday))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if raw == name || raw == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("config: invalid first_weekday %q", c.FirstWeekday)
}

func (c Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveMinutes) * time.Minute
}
