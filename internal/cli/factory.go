// Package cli holds the command logic behind the orchestron binary: building
// a framework from config files, parsing parameter flags, and rendering
// results for terminal or pipeline consumption.
package cli

import (
	"fmt"
	"log/slog"

	orchestron "github.com/orchestron-dev/orchestron"
	"github.com/orchestron-dev/orchestron/internal/config"
	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/pkg/adapters/mail"
	"github.com/orchestron-dev/orchestron/pkg/adapters/store"
	"github.com/orchestron-dev/orchestron/pkg/ports"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	ChainsPath string
	Debug      bool
}

// createLogger configures the application logger. In debug mode it writes
// structured logs to stderr; otherwise logging is silenced so command output
// stays clean for pipelines.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// BuiltinNodes lists every node shipped with the binary. Registration is
// explicit: adding a node means adding it here.
func BuiltinNodes() []ports.Node {
	return []ports.Node{
		mail.NewGetter(),
		mail.NewSender(),
		store.NewWriter(),
	}
}

// NewFramework builds a Framework with the standard CLI conventions: built-in
// nodes, YAML config with environment overrides, and the default chain set
// merged under any chains file the user provides.
func NewFramework(opts Options) (*orchestron.Framework, error) {
	provider, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	chains := config.DefaultChains()
	loaded, err := config.LoadChains(opts.ChainsPath)
	if err != nil {
		return nil, err
	}
	for name, spec := range loaded {
		chains[name] = spec
	}

	fw, err := orchestron.New(
		orchestron.WithNodes(BuiltinNodes()...),
		orchestron.WithConfigProvider(provider),
		orchestron.WithChains(chains),
		orchestron.WithLogger(createLogger(opts.Debug)),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing framework: %w", err)
	}
	return fw, nil
}
