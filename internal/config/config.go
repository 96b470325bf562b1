package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	scopeerrors "github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// File names looked up in the project root, in order of precedence.
const (
	YAMLFile = "vscope.yaml"
	TOMLFile = "vscope.toml"
)

// DefaultMaxUnitsPerFlush bounds a single flush when no limit is configured.
const DefaultMaxUnitsPerFlush = 100_000

// Config represents the optional vscope.yaml or vscope.toml configuration.
type Config struct {
	App       AppConfig       `yaml:"app" toml:"app"`
	Scheduler SchedulerConfig `yaml:"scheduler" toml:"scheduler"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name"`
}

// SchedulerConfig contains scheduler settings. A nil MaxUnitsPerFlush means
// the default; zero disables the limit.
type SchedulerConfig struct {
	MaxUnitsPerFlush *int `yaml:"max_units_per_flush,omitempty" toml:"max_units_per_flush"`
	AutoFlush        bool `yaml:"auto_flush,omitempty" toml:"auto_flush"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `yaml:"level,omitempty" toml:"level"`
	Development bool   `yaml:"development,omitempty" toml:"development"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	Source     string
	ModulePath string
	AppName    string

	MaxUnitsPerFlush int
	AutoFlush        bool

	LogLevel       zapcore.Level
	LogDevelopment bool
}

// LoadOptional reads vscope.yaml or, failing that, vscope.toml from dir. It
// returns an empty config and an empty path when neither exists.
func LoadOptional(dir string) (*Config, string, error) {
	var cfg Config

	path := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", YAMLFile, err)
		}
		return &cfg, path, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, "", fmt.Errorf("failed to read %s: %w", YAMLFile, err)
	}

	path = filepath.Join(dir, TOMLFile)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to parse %s: %w", TOMLFile, err)
	}
	return &cfg, path, nil
}

// Resolve loads the configuration of dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	maxUnits := DefaultMaxUnitsPerFlush
	if cfg.Scheduler.MaxUnitsPerFlush != nil {
		maxUnits = *cfg.Scheduler.MaxUnitsPerFlush
	}
	if maxUnits < 0 {
		return nil, invalid("scheduler.max_units_per_flush must not be negative (got %d)", maxUnits)
	}

	level := zapcore.InfoLevel
	if text := strings.TrimSpace(cfg.Log.Level); text != "" {
		level, err = zapcore.ParseLevel(text)
		if err != nil {
			return nil, invalid("log.level %q is not a valid level", text)
		}
	}

	return &Resolved{
		Root:             dir,
		Source:           source,
		ModulePath:       modulePath,
		AppName:          appName,
		MaxUnitsPerFlush: maxUnits,
		AutoFlush:        cfg.Scheduler.AutoFlush,
		LogLevel:         level,
		LogDevelopment:   cfg.Log.Development,
	}, nil
}

// Logger builds a zap logger from the log settings.
func (r *Resolved) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if r.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(r.LogLevel)
	return zc.Build(zap.Fields(zap.String("app", r.AppName)))
}

// SchedulerOptions maps the scheduler settings to scheduler options.
func (r *Resolved) SchedulerOptions(logger *zap.Logger) []scheduler.Option {
	opts := []scheduler.Option{
		scheduler.WithMaxUnitsPerFlush(r.MaxUnitsPerFlush),
		scheduler.WithAutoFlush(r.AutoFlush),
	}
	if logger != nil {
		opts = append(opts, scheduler.WithLogger(logger))
	}
	return opts
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir's go.mod, or "" when
// dir has none.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "vscope_app"
	}
	return base
}

func invalid(format string, args ...any) error {
	return &scopeerrors.ScopeError{
		Op:   "config.Resolve",
		Kind: scopeerrors.KindConfig,
		Err:  fmt.Errorf("%w: %s", scopeerrors.ErrInvalidConfig, fmt.Sprintf(format, args...)),
	}
}
