package ports

import "github.com/orchestron-dev/orchestron/pkg/domain"

// ConfigProvider resolves the configuration mapping for a node by name.
// The core treats it as an opaque lookup; layering (file defaults, environment
// overrides) is the provider's concern.
type ConfigProvider interface {
	ForNode(name string) domain.Config
}

// StaticConfig is a ConfigProvider backed by a fixed per-node map.
type StaticConfig map[string]domain.Config

func (s StaticConfig) ForNode(name string) domain.Config {
	return s[name]
}
