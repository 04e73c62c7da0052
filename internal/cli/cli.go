package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"autohan/internal/config"
)

type Options struct {
	ShowHelp       bool
	ConfigPath     string
	ModelPath      string
	SampleModel    bool
	ExceptionsPath string
	Threshold      float64
	ThresholdSet   bool
	Debounce       time.Duration
	Explain        []string
	LogLevel       string
	NoWatch        bool
	Clipboard      bool
}

func Parse(args []string) (Options, error) {
	var opts Options
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.ShowHelp = true
		case arg == "--no-watch":
			opts.NoWatch = true
		case arg == "--clipboard":
			opts.Clipboard = true
		case arg == "--sample-model":
			opts.SampleModel = true
		case hasFlag(arg, "--config"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ConfigPath = value
			i = next
		case hasFlag(arg, "--model"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ModelPath = value
			i = next
		case hasFlag(arg, "--exceptions"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ExceptionsPath = value
			i = next
		case hasFlag(arg, "--threshold"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			threshold, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Options{}, fmt.Errorf("invalid threshold '%s'", value)
			}
			opts.Threshold = threshold
			opts.ThresholdSet = true
			i = next
		case hasFlag(arg, "--debounce"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			debounce, err := parseDebounce(value)
			if err != nil {
				return Options{}, err
			}
			opts.Debounce = debounce
			i = next
		case hasFlag(arg, "--explain"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.Explain = append(opts.Explain, splitList(value)...)
			i = next
		case hasFlag(arg, "--log-level"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.LogLevel = value
			i = next
		default:
			return Options{}, fmt.Errorf("unknown option: %s", arg)
		}
	}
	return opts, nil
}

// hasFlag matches "--name" and "--name=value" but not "--name-other".
func hasFlag(arg, name string) bool {
	return arg == name || strings.HasPrefix(arg, name+"=")
}

func extractValue(current string, index int, args []string) (string, int, error) {
	if eq := strings.IndexRune(current, '='); eq >= 0 {
		return current[eq+1:], index, nil
	}
	if index+1 >= len(args) {
		return "", index, fmt.Errorf("option %s requires a value", current)
	}
	return args[index+1], index + 1, nil
}

// parseDebounce accepts a Go duration or a bare number of milliseconds.
func parseDebounce(value string) (time.Duration, error) {
	if ms, err := strconv.Atoi(value); err == nil {
		value = strconv.Itoa(ms) + "ms"
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid debounce '%s'", value)
	}
	return d, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Apply layers the command line over cfg. Flags win over the file and the
// environment.
func (o Options) Apply(cfg *config.Config) error {
	if o.ModelPath != "" {
		cfg.Model.Path = o.ModelPath
	}
	if o.ExceptionsPath != "" {
		cfg.Exceptions.File = o.ExceptionsPath
	}
	if o.ThresholdSet {
		cfg.Engine.Threshold = o.Threshold
	}
	if o.Debounce > 0 {
		cfg.Engine.Debounce = o.Debounce
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.NoWatch {
		cfg.Exceptions.Watch = false
	}
	if o.Clipboard {
		cfg.Output.Clipboard = true
	}
	return cfg.Validate()
}

func Usage() string {
	return `autohan - automatic Latin to Hangul conversion
Usage: autohan [options]

Options:
  --config PATH           Path to autohan.ini (default: ./autohan.ini if present)
  --model PATH            Bigram model JSON (overrides [model] path)
  --sample-model          Use the built-in sample model instead of a model file
  --exceptions PATH       YAML exception word list (default: built-in list)
  --threshold VALUE       Minimum confidence score for a conversion (default: 0.5)
  --debounce DURATION     Quiet period before a run is evaluated, e.g. 300ms
  --explain RUNS          Comma-separated key runs to analyse and print, then exit
  --log-level LEVEL       debug, info, warn or error
  --no-watch              Do not reload the exception list when it changes
  --clipboard             Copy converted text to the system clipboard
  -h, --help              Show this help message

Hotkeys (configurable in [hotkeys]):
  ctrl+space convert now, ctrl+z undo, ctrl+t toggle mode, esc cancel`
}
