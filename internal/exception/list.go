package exception

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default_words.yaml
var defaultWords []byte

type listFile struct {
	Words []string `yaml:"words"`
}

// DefaultWords returns the curated list shipped with the binary.
func DefaultWords() []string {
	words, err := ParseList(defaultWords)
	if err != nil {
		panic(fmt.Sprintf("embedded exception list: %v", err))
	}
	return words
}

// ParseList decodes a YAML word list. Entries are trimmed, lower-cased and
// de-duplicated; blank entries are dropped.
func ParseList(data []byte) ([]string, error) {
	var file listFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse exception list: %w", err)
	}
	return normalise(file.Words), nil
}

func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open exception list: %w", err)
	}
	return ParseList(data)
}

func normalise(words []string) []string {
	cleaned := lo.Map(words, func(word string, _ int) string {
		return strings.ToLower(strings.TrimSpace(word))
	})
	return lo.Uniq(lo.Compact(cleaned))
}
