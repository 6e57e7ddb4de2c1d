package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/observability"
	"github.com/orchestron-dev/orchestron/pkg/ports"
	"github.com/orchestron-dev/orchestron/pkg/registry"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// Executor runs a single node behind a uniform error boundary: raw input is
// validated first, expected failures come back as classified Results, and
// anything unexpected (returned error or panic) is converted to an
// InternalError failure instead of escaping to the caller.
type Executor struct {
	registry *registry.Registry
	config   ports.ConfigProvider
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collectors fed per invocation.
func WithMetrics(m *observability.Metrics) ExecutorOption {
	return func(e *Executor) {
		if m != nil {
			e.metrics = m
		}
	}
}

// NewExecutor creates an Executor bound to a registry and a config provider.
func NewExecutor(reg *registry.Registry, config ports.ConfigProvider, opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry: reg,
		config:   config,
		logger:   logging.NewNop(),
		metrics:  observability.NopMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run resolves, validates and executes a node by name. It always returns a
// structured Result; the caller never sees a raw fault.
func (e *Executor) Run(ctx context.Context, name string, raw map[string]any) domain.Result {
	node, err := e.registry.Resolve(name)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return e.finish(name, domain.Fail(domain.KindNotFound, "unknown node %q", name), time.Now())
		}
		return e.finish(name, domain.FailErr(domain.KindInternal, err), time.Now())
	}
	return e.RunNode(ctx, node, raw)
}

// RunNode executes an already-resolved node with raw parameters.
func (e *Executor) RunNode(ctx context.Context, node ports.Node, raw map[string]any) domain.Result {
	desc := node.Describe()
	start := time.Now()
	invocationID := uuid.NewString()

	log := e.logger.With("node", desc.Name, "invocation", invocationID)

	params, err := schema.Validate(desc.Parameters, raw)
	if err != nil {
		// No side effect has happened yet; surface the offending fields.
		log.Warn("parameter validation failed", "error", err)
		return e.finish(desc.Name, domain.FailErr(domain.KindValidation, err), start)
	}

	cfg := e.config.ForNode(desc.Name)

	result := e.execute(ctx, node, params, cfg, log)
	log.Info("node executed",
		"ok", result.OK,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return e.finish(desc.Name, result, start)
}

// execute is the exact boundary between expected, typed failures and
// unexpected faults.
func (e *Executor) execute(ctx context.Context, node ports.Node, params schema.Params, cfg domain.Config, log *slog.Logger) (result domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("node panicked", "panic", r)
			result = domain.Fail(domain.KindInternal, "node panicked: %v", r)
		}
	}()

	result, err := node.Execute(ctx, params, cfg)
	if err != nil {
		return domain.Fail(domain.KindInternal, "unexpected fault: %v", err)
	}
	if !result.OK && result.Failure == nil {
		return domain.Fail(domain.KindInternal, "node returned a failed result without a failure")
	}
	return result
}

func (e *Executor) finish(node string, result domain.Result, start time.Time) domain.Result {
	if result.Failure != nil && result.Failure.Node == "" {
		result.Failure.Node = node
	}
	outcome := "success"
	if !result.OK {
		outcome = string(result.Failure.Kind)
	}
	e.metrics.ObserveExecution(node, outcome, time.Since(start))
	return result
}

// Descriptor resolves a node and returns its descriptor.
func (e *Executor) Descriptor(name string) (domain.Descriptor, error) {
	node, err := e.registry.Resolve(name)
	if err != nil {
		return domain.Descriptor{}, fmt.Errorf("describe: %w", err)
	}
	return node.Describe(), nil
}
