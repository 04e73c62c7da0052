package engine

import (
	"fmt"
	"time"

	"autohan/internal/types"
)

type Config struct {
	// Debounce is the quiet period after the last key before a run is
	// evaluated.
	Debounce time.Duration
	// Threshold is the minimum confidence score for a conversion.
	Threshold float64
	// MinKeys and MinSyllables gate automatic conversions. The manual
	// trigger ignores both.
	MinKeys        int
	MinSyllables   int
	MaxKeys        int
	StructureCheck bool
	// StartMode is the host input mode assumed at startup.
	StartMode types.InputMode
	// ManualOnly turns off automatic detection. Runs are still buffered
	// and convert only on the manual trigger.
	ManualOnly bool
	// SwitchToHangul asks the sink to move the host to Hangul input after
	// a conversion. Sinks that cannot switch ignore it.
	SwitchToHangul bool
}

func DefaultConfig() Config {
	return Config{
		Debounce:       300 * time.Millisecond,
		Threshold:      0.5,
		MinKeys:        3,
		MinSyllables:   2,
		MaxKeys:        100,
		StructureCheck: true,
		StartMode:      types.ModeLatin,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Debounce <= 0:
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	case c.MinKeys < 1:
		return fmt.Errorf("min_keys must be at least 1, got %d", c.MinKeys)
	case c.MinSyllables < 1:
		return fmt.Errorf("min_syllables must be at least 1, got %d", c.MinSyllables)
	case c.MaxKeys < c.MinKeys:
		return fmt.Errorf("max_keys (%d) must not be below min_keys (%d)", c.MaxKeys, c.MinKeys)
	}
	return nil
}
