package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// chainsFile is the on-disk structure of chains.yaml.
type chainsFile struct {
	Chains map[string]struct {
		Description string             `yaml:"description"`
		Steps       []domain.ChainStep `yaml:"steps"`
	} `yaml:"chains"`
}

// LoadChains reads chain definitions from a YAML file. Each chain is
// validated structurally (step names, backward-only references); checking
// references against actual node descriptors happens at compile time in the
// runtime, once a registry exists.
func LoadChains(path string) (map[string]domain.ChainSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.ChainSpec{}, nil
		}
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	var file chainsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := make(map[string]domain.ChainSpec, len(file.Chains))
	for name, raw := range file.Chains {
		spec := domain.ChainSpec{Name: name, Description: raw.Description, Steps: raw.Steps}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out[name] = spec
	}
	return out, nil
}

// DefaultChains returns the built-in chain set, shipped so a bare install can
// run the canonical mail-to-store flow without writing a chains file.
func DefaultChains() map[string]domain.ChainSpec {
	return map[string]domain.ChainSpec{
		"emailgetter_to_db": {
			Name:        "emailgetter_to_db",
			Description: "Fetch recent emails and persist them",
			Steps: []domain.ChainStep{
				{Node: "emailgetter"},
				{Node: "dbwriter", Inputs: map[string]domain.Input{
					"emails": {Ref: &domain.StepRef{Step: "emailgetter", Field: "emails"}},
				}},
			},
		},
	}
}
