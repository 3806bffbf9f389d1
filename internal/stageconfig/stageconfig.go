// Package stageconfig loads the authored analysis content: the stage rubric
// with its percentage boundaries and strength/gap findings, and the keyword
// vocabulary. Loaded once at startup and treated as immutable afterwards.
package stageconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hvac-call-insights/internal/stats"
	"hvac-call-insights/internal/types"
)

type Config struct {
	Stages        []types.StageDefinition `yaml:"stages"`
	Keywords      []types.KeywordDef      `yaml:"keywords"`
	LowConfidence float64                 `yaml:"low_confidence_threshold"`
}

// Load finds the analysis config by ANALYSIS_CONFIG or the usual locations.
func Load() (*Config, error) {
	if p := os.Getenv("ANALYSIS_CONFIG"); p != "" {
		return LoadFile(p)
	}
	guess := []string{
		filepath.Join("config", "analysis.yaml"),
		"analysis.yaml",
	}
	var lastErr error
	for _, p := range guess {
		cfg, err := LoadFile(p)
		if err == nil {
			return cfg, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.LowConfidence == 0 {
		cfg.LowConfidence = stats.DefaultLowConfidence
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate enforces the preconditions the stage generator relies on: the
// ordered stage list covers 0–100 contiguously, ids are unique, and keyword
// phrases are lowercase literals.
func (c *Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("no stages defined")
	}
	seen := map[string]bool{}
	for i, st := range c.Stages {
		if st.ID == "" {
			return fmt.Errorf("stage %d: missing id", i)
		}
		if seen[st.ID] {
			return fmt.Errorf("stage %q: duplicate id", st.ID)
		}
		seen[st.ID] = true
		if st.StartPercent < 0 || st.EndPercent > 100 || st.StartPercent > st.EndPercent {
			return fmt.Errorf("stage %q: bad percent range %v-%v", st.ID, st.StartPercent, st.EndPercent)
		}
		if i == 0 && st.StartPercent != 0 {
			return fmt.Errorf("stage %q: first stage must start at 0", st.ID)
		}
		if i > 0 && st.StartPercent != c.Stages[i-1].EndPercent {
			return fmt.Errorf("stage %q: starts at %v but previous stage ends at %v",
				st.ID, st.StartPercent, c.Stages[i-1].EndPercent)
		}
	}
	if last := c.Stages[len(c.Stages)-1]; last.EndPercent != 100 {
		return fmt.Errorf("stage %q: last stage must end at 100", last.ID)
	}
	for i, kw := range c.Keywords {
		if kw.Phrase == "" {
			return fmt.Errorf("keyword %d: missing phrase", i)
		}
		if kw.Phrase != strings.ToLower(kw.Phrase) {
			return fmt.Errorf("keyword %q: phrase must be lowercase", kw.Phrase)
		}
	}
	if c.LowConfidence < 0 || c.LowConfidence > 1 {
		return fmt.Errorf("low_confidence_threshold %v outside [0,1]", c.LowConfidence)
	}
	return nil
}
