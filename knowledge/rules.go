package knowledge

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/symptomit/core"
)

// ruleEntry is the on-disk shape of one pattern rule.
type ruleEntry struct {
	Id          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Triggers    []string `yaml:"triggers"`
	Rationale   string   `yaml:"rationale"`
	Suggestions []string `yaml:"suggestions"`
}

// LoadPatternRules reads extra pattern rules from a YAML file. A missing file
// is a valid empty state. Invalid rules are skipped with a warning so one bad
// entry never discards the rest of the file.
func LoadPatternRules(path string, logger *slog.Logger) ([]core.PatternRule, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open pattern rules: %w", err)
	}
	defer f.Close()
	return ParsePatternRules(f, logger)
}

// ParsePatternRules decodes a YAML list of pattern rules in file order.
func ParsePatternRules(r io.Reader, logger *slog.Logger) ([]core.PatternRule, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var entries []ruleEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode pattern rules: %w", err)
	}

	var rules []core.PatternRule
	for _, entry := range entries {
		rule := core.PatternRule{
			Id:          entry.Id,
			Title:       entry.Title,
			Triggers:    entry.Triggers,
			Rationale:   entry.Rationale,
			Suggestions: entry.Suggestions,
		}
		if err := core.ValidatePatternRule(&rule); err != nil {
			logger.Warn("skipping invalid pattern rule", "id", entry.Id, "error", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
