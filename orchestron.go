package orchestron

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/internal/runtime"
	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/observability"
	"github.com/orchestron-dev/orchestron/pkg/ports"
	"github.com/orchestron-dev/orchestron/pkg/registry"
)

// Version is the framework version reported by the CLI and the MCP server.
var Version = "0.2.0"

// Framework is the high-level entry point for the Orchestron library.
// It owns the node registry, the single-node executor and the chain runner,
// and provides a simplified API for consumers.
type Framework struct {
	registry *registry.Registry
	config   ports.ConfigProvider
	executor *runtime.Executor
	runner   *runtime.ChainRunner
	chains   map[string]domain.ChainSpec
	nodes    []ports.Node
	logger   *slog.Logger
	metrics  *observability.Metrics
	reducer  runtime.Reducer
}

// Option defines a functional option for configuring the Framework.
type Option func(*Framework)

// WithNodes registers action nodes at startup. Discovery is explicit: every
// node variant is listed here, nothing is scanned from disk.
func WithNodes(nodes ...ports.Node) Option {
	return func(f *Framework) {
		f.nodes = append(f.nodes, nodes...)
	}
}

// WithConfigProvider injects the configuration source consulted per node.
func WithConfigProvider(p ports.ConfigProvider) Option {
	return func(f *Framework) {
		if p != nil {
			f.config = p
		}
	}
}

// WithChains registers named chain definitions. They are compiled against
// the registry during New, so broken references fail at startup.
func WithChains(chains map[string]domain.ChainSpec) Option {
	return func(f *Framework) {
		for name, spec := range chains {
			f.chains[name] = spec
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Framework) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collectors fed by the runtime.
func WithMetrics(m *observability.Metrics) Option {
	return func(f *Framework) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithReducer overrides the default chain aggregate.
func WithReducer(fn runtime.Reducer) Option {
	return func(f *Framework) {
		f.reducer = fn
	}
}

// New initializes the Framework: registers all nodes, freezes the registry,
// and compiles every chain definition. Registration collisions and invalid
// chains are startup errors.
func New(opts ...Option) (*Framework, error) {
	f := &Framework{
		registry: registry.New(),
		config:   ports.StaticConfig{},
		chains:   make(map[string]domain.ChainSpec),
		logger:   logging.NewNop(),
		metrics:  observability.NopMetrics(),
	}
	for _, opt := range opts {
		opt(f)
	}

	for _, node := range f.nodes {
		if err := f.registry.Register(node); err != nil {
			return nil, fmt.Errorf("registering nodes: %w", err)
		}
	}
	f.registry.Freeze()

	f.executor = runtime.NewExecutor(f.registry, f.config,
		runtime.WithLogger(f.logger),
		runtime.WithMetrics(f.metrics),
	)

	chainOpts := []runtime.ChainOption{
		runtime.WithChainLogger(f.logger),
		runtime.WithChainMetrics(f.metrics),
	}
	if f.reducer != nil {
		chainOpts = append(chainOpts, runtime.WithReducer(f.reducer))
	}
	f.runner = runtime.NewChainRunner(f.executor, f.registry, chainOpts...)

	for name, spec := range f.chains {
		if err := f.runner.Compile(spec); err != nil {
			return nil, fmt.Errorf("chain %q: %w", name, err)
		}
	}

	return f, nil
}

// Run validates and executes a single node by name.
func (f *Framework) Run(ctx context.Context, name string, raw map[string]any) domain.Result {
	return f.executor.Run(ctx, name, raw)
}

// RunChain executes a registered chain by name.
func (f *Framework) RunChain(ctx context.Context, name string) (runtime.ChainResult, error) {
	spec, ok := f.chains[name]
	if !ok {
		return runtime.ChainResult{}, fmt.Errorf("run chain %q: %w", name, domain.ErrChainNotFound)
	}
	return f.runner.Run(ctx, spec), nil
}

// RunChainSpec compiles and executes an ad-hoc chain definition.
func (f *Framework) RunChainSpec(ctx context.Context, spec domain.ChainSpec) runtime.ChainResult {
	return f.runner.Run(ctx, spec)
}

// Describe returns the descriptor of a registered node.
func (f *Framework) Describe(name string) (domain.Descriptor, error) {
	node, err := f.registry.Resolve(name)
	if err != nil {
		return domain.Descriptor{}, err
	}
	return node.Describe(), nil
}

// Descriptors lists all node descriptors in registration order.
func (f *Framework) Descriptors() []domain.Descriptor {
	return f.registry.Descriptors()
}

// Chains lists the registered chain definitions sorted by name.
func (f *Framework) Chains() []domain.ChainSpec {
	out := make([]domain.ChainSpec, 0, len(f.chains))
	for _, spec := range f.chains {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Chain returns a registered chain definition by name.
func (f *Framework) Chain(name string) (domain.ChainSpec, bool) {
	spec, ok := f.chains[name]
	return spec, ok
}
