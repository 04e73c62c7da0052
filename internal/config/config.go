package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ini "gopkg.in/ini.v1"

	"autohan/internal/engine"
	"autohan/internal/exception"
	"autohan/internal/ngram"
	"autohan/internal/types"
)

const DefaultFileName = "autohan.ini"

type ModelConfig struct {
	Path          string
	UnseenPenalty float64
}

type ExceptionConfig struct {
	// File is a YAML word list. Empty means the built-in list.
	File      string
	MinPrefix int
	Patterns  bool
	Watch     bool
}

type HotkeyConfig struct {
	Convert string
	Undo    string
	Toggle  string
	Cancel  string
}

type OutputConfig struct {
	Clipboard bool
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	Engine     engine.Config
	Model      ModelConfig
	Exceptions ExceptionConfig
	Hotkeys    HotkeyConfig
	Output     OutputConfig
	Log        LogConfig
	// Path is the file the configuration was read from, if any.
	Path string
}

type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string { return e.msg }

func Default() Config {
	opts := exception.DefaultOptions()
	return Config{
		Engine: engine.DefaultConfig(),
		Model: ModelConfig{
			Path:          "model.json",
			UnseenPenalty: ngram.DefaultScoreConfig().UnseenPenalty,
		},
		Exceptions: ExceptionConfig{
			MinPrefix: opts.MinPrefix,
			Patterns:  opts.Patterns,
			Watch:     true,
		},
		Hotkeys: HotkeyConfig{
			Convert: "ctrl+space",
			Undo:    "ctrl+z",
			Toggle:  "ctrl+t",
			Cancel:  "esc",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func (c Config) ScoreConfig() ngram.ScoreConfig {
	return ngram.ScoreConfig{UnseenPenalty: c.Model.UnseenPenalty}
}

func (c Config) ExceptionOptions() exception.Options {
	return exception.Options{MinPrefix: c.Exceptions.MinPrefix, Patterns: c.Exceptions.Patterns}
}

var knownKeys = map[string][]string{
	ini.DefaultSection: nil,
	"engine":           {"debounce_ms", "threshold", "min_keys", "min_syllables", "max_keys", "structure_check", "start_mode", "auto", "switch_to_hangul"},
	"model":            {"path", "unseen_penalty"},
	"exceptions":       {"file", "min_prefix", "patterns", "watch"},
	"hotkeys":          {"convert", "undo", "toggle", "cancel"},
	"output":           {"clipboard"},
	"log":              {"level", "format"},
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, ConfigError{msg: fmt.Sprintf("failed to read config: %v", err)}
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, ConfigError{msg: fmt.Sprintf("%s: %v", path, err)}
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse reads INI data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	file, err := ini.Load(data)
	if err != nil {
		return Config{}, ConfigError{msg: fmt.Sprintf("invalid ini: %v", err)}
	}
	for _, section := range file.Sections() {
		allowed, ok := knownKeys[section.Name()]
		if !ok {
			return Config{}, ConfigError{msg: fmt.Sprintf("unknown section [%s]", section.Name())}
		}
		for _, key := range section.KeyStrings() {
			if !contains(allowed, key) {
				return Config{}, ConfigError{msg: fmt.Sprintf("unknown key %q in [%s]", key, section.Name())}
			}
		}
	}

	r := reader{file: file}
	var debounceMS int
	if r.intValue("engine", "debounce_ms", &debounceMS) {
		cfg.Engine.Debounce = time.Duration(debounceMS) * time.Millisecond
	}
	r.floatValue("engine", "threshold", &cfg.Engine.Threshold)
	r.intValue("engine", "min_keys", &cfg.Engine.MinKeys)
	r.intValue("engine", "min_syllables", &cfg.Engine.MinSyllables)
	r.intValue("engine", "max_keys", &cfg.Engine.MaxKeys)
	r.boolValue("engine", "structure_check", &cfg.Engine.StructureCheck)
	r.boolValue("engine", "switch_to_hangul", &cfg.Engine.SwitchToHangul)
	auto := !cfg.Engine.ManualOnly
	r.boolValue("engine", "auto", &auto)
	cfg.Engine.ManualOnly = !auto
	var startMode string
	r.stringValue("engine", "start_mode", &startMode)
	if startMode != "" && r.err == nil {
		mode, err := types.ParseMode(startMode)
		if err != nil {
			r.fail("engine", "start_mode", err)
		}
		cfg.Engine.StartMode = mode
	}

	r.stringValue("model", "path", &cfg.Model.Path)
	r.floatValue("model", "unseen_penalty", &cfg.Model.UnseenPenalty)

	r.stringValue("exceptions", "file", &cfg.Exceptions.File)
	r.intValue("exceptions", "min_prefix", &cfg.Exceptions.MinPrefix)
	r.boolValue("exceptions", "patterns", &cfg.Exceptions.Patterns)
	r.boolValue("exceptions", "watch", &cfg.Exceptions.Watch)

	r.stringValue("hotkeys", "convert", &cfg.Hotkeys.Convert)
	r.stringValue("hotkeys", "undo", &cfg.Hotkeys.Undo)
	r.stringValue("hotkeys", "toggle", &cfg.Hotkeys.Toggle)
	r.stringValue("hotkeys", "cancel", &cfg.Hotkeys.Cancel)

	r.boolValue("output", "clipboard", &cfg.Output.Clipboard)

	r.stringValue("log", "level", &cfg.Log.Level)
	r.stringValue("log", "format", &cfg.Log.Format)

	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// reader keeps the first conversion error so Parse can read every key
// without checking each one.
type reader struct {
	file *ini.File
	err  error
}

func (r *reader) key(section, name string) (*ini.Key, bool) {
	if r.err != nil {
		return nil, false
	}
	sec, err := r.file.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return nil, false
	}
	return sec.Key(name), true
}

func (r *reader) fail(section, name string, err error) {
	r.err = ConfigError{msg: fmt.Sprintf("invalid %s.%s: %v", section, name, err)}
}

func (r *reader) stringValue(section, name string, dst *string) {
	if key, ok := r.key(section, name); ok {
		*dst = strings.TrimSpace(key.String())
	}
}

func (r *reader) intValue(section, name string, dst *int) bool {
	key, ok := r.key(section, name)
	if !ok {
		return false
	}
	v, err := key.Int()
	if err != nil {
		r.fail(section, name, err)
		return false
	}
	*dst = v
	return true
}

func (r *reader) floatValue(section, name string, dst *float64) {
	key, ok := r.key(section, name)
	if !ok {
		return
	}
	v, err := key.Float64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *reader) boolValue(section, name string, dst *bool) {
	key, ok := r.key(section, name)
	if !ok {
		return
	}
	v, err := key.Bool()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func (c *Config) resolvePaths(base string) {
	if c.Model.Path != "" && !filepath.IsAbs(c.Model.Path) {
		c.Model.Path = filepath.Join(base, c.Model.Path)
	}
	if c.Exceptions.File != "" && !filepath.IsAbs(c.Exceptions.File) {
		c.Exceptions.File = filepath.Join(base, c.Exceptions.File)
	}
}

func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return ConfigError{msg: err.Error()}
	}
	if c.Model.UnseenPenalty < 0 {
		return ConfigError{msg: fmt.Sprintf("unseen_penalty must not be negative, got %g", c.Model.UnseenPenalty)}
	}
	if c.Exceptions.MinPrefix < 0 {
		return ConfigError{msg: fmt.Sprintf("min_prefix must not be negative, got %d", c.Exceptions.MinPrefix)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return ConfigError{msg: fmt.Sprintf("invalid log format '%s'", c.Log.Format)}
	}
	return nil
}

// ApplyEnv overrides settings from AUTOHAN_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if value, ok := lookup("AUTOHAN_DEBOUNCE_MS"); ok && value != "" {
		ms, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return ConfigError{msg: fmt.Sprintf("invalid AUTOHAN_DEBOUNCE_MS '%s'", value)}
		}
		c.Engine.Debounce = time.Duration(ms) * time.Millisecond
	}
	if value, ok := lookup("AUTOHAN_THRESHOLD"); ok && value != "" {
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return ConfigError{msg: fmt.Sprintf("invalid AUTOHAN_THRESHOLD '%s'", value)}
		}
		c.Engine.Threshold = threshold
	}
	if value, ok := lookup("AUTOHAN_MODEL"); ok && value != "" {
		c.Model.Path = value
	}
	if value, ok := lookup("AUTOHAN_EXCEPTIONS"); ok && value != "" {
		c.Exceptions.File = value
	}
	return c.Validate()
}

// Resolve loads cliPath when given, otherwise ./autohan.ini when present,
// otherwise the defaults.
func Resolve(cliPath string) (Config, error) {
	if cliPath != "" {
		return Load(cliPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	defaultPath := filepath.Join(cwd, DefaultFileName)
	if _, statErr := os.Stat(defaultPath); statErr == nil {
		return Load(defaultPath)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Config{}, ConfigError{msg: fmt.Sprintf("failed to stat %s: %v", defaultPath, statErr)}
	}
	return Default(), nil
}
