package puzzle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kurobon/gitquest/internal/engine"
)

// Tier describes one difficulty band: how many file targets to place, the
// depth range they are drawn from, the branch vocabulary, the session
// constraints and the par band a candidate puzzle must land in.
type Tier struct {
	Name        string             `yaml:"name" json:"name"`
	Files       int                `yaml:"files" json:"files"`
	MinDepth    int                `yaml:"minDepth" json:"minDepth"`
	MaxDepth    int                `yaml:"maxDepth" json:"maxDepth"`
	Branches    []string           `yaml:"branches" json:"branches"`
	ParMin      int                `yaml:"parMin" json:"parMin"`
	ParMax      int                `yaml:"parMax" json:"parMax"`
	Constraints engine.Constraints `yaml:"constraints" json:"constraints"`
}

// DefaultTiers returns the built-in difficulty bands used when no tier file
// is configured. The trunk is always the first branch.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name:     "easy",
			Files:    2,
			MinDepth: 1,
			MaxDepth: 2,
			Branches: []string{"main", "feature"},
			ParMin:   2,
			ParMax:   7,
			Constraints: engine.Constraints{
				MaxCommands:  12,
				MaxCommits:   6,
				MaxCheckouts: 5,
			},
		},
		{
			Name:     "medium",
			Files:    3,
			MinDepth: 1,
			MaxDepth: 3,
			Branches: []string{"main", "feature", "bugfix"},
			ParMin:   5,
			ParMax:   10,
			Constraints: engine.Constraints{
				MaxCommands:  14,
				MaxCommits:   8,
				MaxCheckouts: 6,
			},
		},
		{
			Name:     "hard",
			Files:    4,
			MinDepth: 1,
			MaxDepth: 3,
			Branches: []string{"main", "feature", "bugfix", "release"},
			ParMin:   7,
			ParMax:   14,
			Constraints: engine.Constraints{
				MaxCommands:           16,
				MaxCommits:            9,
				MaxCheckouts:          7,
				MaxConsecutiveCommits: 3,
			},
		},
	}
}

// LoadTiers reads tier definitions from a YAML file.
func LoadTiers(path string) ([]Tier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier file: %w", err)
	}
	var tiers []Tier
	if err := yaml.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("failed to parse tier yaml: %w", err)
	}
	for _, t := range tiers {
		if err := validateTier(t); err != nil {
			return nil, err
		}
	}
	return tiers, nil
}

func validateTier(t Tier) error {
	if t.Name == "" {
		return fmt.Errorf("tier without a name")
	}
	if t.Files < 1 {
		return fmt.Errorf("tier %s: needs at least one file target", t.Name)
	}
	if len(t.Branches) < 2 {
		return fmt.Errorf("tier %s: needs a trunk and at least one other branch", t.Name)
	}
	if t.MinDepth < 1 || t.MaxDepth < t.MinDepth {
		return fmt.Errorf("tier %s: invalid depth range [%d, %d]", t.Name, t.MinDepth, t.MaxDepth)
	}
	if t.ParMin < 1 || t.ParMax < t.ParMin {
		return fmt.Errorf("tier %s: invalid par band [%d, %d]", t.Name, t.ParMin, t.ParMax)
	}
	return nil
}

// FindTier selects a tier by name.
func FindTier(tiers []Tier, name string) (Tier, bool) {
	for _, t := range tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}
