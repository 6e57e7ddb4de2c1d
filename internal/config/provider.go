// Package config loads node configuration and chain definitions from YAML
// files, overlaying environment variables on top of file-sourced defaults.
// The core consumes only the final merged mapping.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// EnvPrefix is the prefix of override variables: ORCHESTRON_<NODE>_<KEY>
// overrides key <key> in node <node>'s section. Node and key are uppercased;
// config keys themselves are lowercase snake_case.
const EnvPrefix = "ORCHESTRON"

// Provider resolves per-node configuration. File sections are keyed by node
// name; environment variables win over file values and may introduce keys the
// file never mentions.
type Provider struct {
	sections map[string]map[string]any
	environ  func() []string
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithEnviron replaces the environment source. Tests use this instead of
// mutating the process environment.
func WithEnviron(fn func() []string) ProviderOption {
	return func(p *Provider) {
		if fn != nil {
			p.environ = fn
		}
	}
}

// Load reads a YAML config file keyed by node name. A missing file is not an
// error: every section is then empty and only environment overrides apply.
func Load(path string, opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		sections: make(map[string]map[string]any),
		environ:  os.Environ,
	}
	for _, opt := range opts {
		opt(p)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p.sections); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}

// Static builds a Provider from an in-memory section map.
func Static(sections map[string]map[string]any, opts ...ProviderOption) *Provider {
	p := &Provider{sections: sections, environ: os.Environ}
	if p.sections == nil {
		p.sections = make(map[string]map[string]any)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ForNode returns the merged configuration for a node. The returned map is a
// fresh copy on every call, so nodes can read it without aliasing provider
// state.
func (p *Provider) ForNode(name string) domain.Config {
	merged := make(domain.Config)
	for k, v := range p.sections[name] {
		merged[k] = v
	}

	prefix := EnvPrefix + "_" + strings.ToUpper(name) + "_"
	for _, kv := range p.environ() {
		env, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(env, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(env, prefix))
		if key == "" {
			continue
		}
		merged[key] = value
	}
	return merged
}
