package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/orchestron-dev/orchestron/internal/logging"
	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/observability"
	"github.com/orchestron-dev/orchestron/pkg/registry"
)

// ChainStatus is the state of a chain run.
type ChainStatus string

const (
	ChainPending   ChainStatus = "pending"
	ChainRunning   ChainStatus = "running"
	ChainSucceeded ChainStatus = "succeeded"
	ChainFailed    ChainStatus = "failed"
)

// StepResult pairs a step's name with the Result its node produced.
type StepResult struct {
	Step   string        `json:"step"`
	Node   string        `json:"node"`
	Result domain.Result `json:"result"`
}

// ChainResult is the aggregate outcome of a chain run.
type ChainResult struct {
	Chain      string         `json:"chain"`
	Status     ChainStatus    `json:"status"`
	Steps      []StepResult   `json:"steps"`
	FailedStep int            `json:"failed_step"` // -1 unless Status is failed
	Aggregate  map[string]any `json:"aggregate,omitempty"`
}

// Reducer folds the step results of a fully successful run into the
// aggregate value reported to the caller.
type Reducer func(steps []StepResult) map[string]any

// defaultReducer summarizes the final step: its payload plus a success marker.
func defaultReducer(steps []StepResult) map[string]any {
	agg := map[string]any{"status": "success"}
	if len(steps) == 0 {
		return agg
	}
	for k, v := range steps[len(steps)-1].Result.Payload {
		agg[k] = v
	}
	return agg
}

// ChainRunner executes compiled chains step by step, threading payload fields
// from earlier steps into later steps' parameters. Execution is strictly
// sequential and fail-fast; there is no compensation for side effects of
// steps that already ran.
type ChainRunner struct {
	executor *Executor
	registry *registry.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	reducer  Reducer
}

// ChainOption configures a ChainRunner.
type ChainOption func(*ChainRunner)

// WithChainLogger sets a structured logger.
func WithChainLogger(logger *slog.Logger) ChainOption {
	return func(r *ChainRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithChainMetrics sets the Prometheus collectors fed per run.
func WithChainMetrics(m *observability.Metrics) ChainOption {
	return func(r *ChainRunner) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithReducer overrides the default aggregate over step results.
func WithReducer(fn Reducer) ChainOption {
	return func(r *ChainRunner) {
		if fn != nil {
			r.reducer = fn
		}
	}
}

// NewChainRunner creates a ChainRunner sharing the Executor's registry.
func NewChainRunner(executor *Executor, reg *registry.Registry, opts ...ChainOption) *ChainRunner {
	r := &ChainRunner{
		executor: executor,
		registry: reg,
		logger:   logging.NewNop(),
		metrics:  observability.NopMetrics(),
		reducer:  defaultReducer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Compile checks a chain definition against the registry before anything
// runs: every step's node must exist, step names must be unique, and every
// reference must point at a payload field an *earlier* step's node declares
// in its descriptor outputs. A reference to an absent field is a build-time
// error here, never a runtime surprise.
func (r *ChainRunner) Compile(spec domain.ChainSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	byStep := make(map[string]domain.Descriptor, len(spec.Steps))
	for i, step := range spec.Steps {
		node, err := r.registry.Resolve(step.Node)
		if err != nil {
			return fmt.Errorf("chain %q step %d: %w", spec.Name, i, err)
		}
		desc := node.Describe()

		for param, in := range step.Inputs {
			if in.Ref == nil {
				continue
			}
			upstream, ok := byStep[in.Ref.Step]
			if !ok {
				// Unreachable after spec.Validate, kept as a guard.
				return fmt.Errorf("chain %q step %d: input %q references unknown step %q",
					spec.Name, i, param, in.Ref.Step)
			}
			if !upstream.HasOutput(in.Ref.Field) {
				return fmt.Errorf("chain %q step %d: input %q references %s, but node %q declares no output field %q",
					spec.Name, i, param, in.Ref, upstream.Name, in.Ref.Field)
			}
		}
		byStep[step.Name()] = desc
	}
	return nil
}

// Run compiles and executes a chain. The returned ChainResult always carries
// the per-step results gathered so far; on failure FailedStep indexes the
// step whose node produced the failure and no later step is invoked.
func (r *ChainRunner) Run(ctx context.Context, spec domain.ChainSpec) ChainResult {
	result := ChainResult{Chain: spec.Name, Status: ChainPending, FailedStep: -1}

	if err := r.Compile(spec); err != nil {
		r.logger.Warn("chain rejected", "chain", spec.Name, "error", err)
		r.metrics.ObserveChain(spec.Name, "invalid")
		result.Status = ChainFailed
		result.Aggregate = map[string]any{"status": "invalid", "reason": err.Error()}
		return result
	}

	log := r.logger.With("chain", spec.Name)
	outcomes := make(map[string]domain.Result, len(spec.Steps))
	start := time.Now()

	result.Status = ChainRunning
	for i, step := range spec.Steps {
		raw := r.resolveInputs(step, outcomes)

		log.Info("running step", "step", step.Name(), "node", step.Node, "index", i)
		stepResult := r.executor.Run(ctx, step.Node, raw)

		result.Steps = append(result.Steps, StepResult{Step: step.Name(), Node: step.Node, Result: stepResult})
		outcomes[step.Name()] = stepResult

		if !stepResult.OK {
			log.Warn("chain halted",
				"step", step.Name(),
				"index", i,
				"kind", stepResult.Failure.Kind,
				"error", stepResult.Failure.Message)
			r.metrics.ObserveChain(spec.Name, "failed")
			result.Status = ChainFailed
			result.FailedStep = i
			result.Aggregate = map[string]any{
				"status": "failed",
				"step":   step.Name(),
				"reason": stepResult.Failure.Error(),
			}
			return result
		}
	}

	result.Status = ChainSucceeded
	result.Aggregate = r.reducer(result.Steps)
	r.metrics.ObserveChain(spec.Name, "succeeded")
	log.Info("chain succeeded", "steps", len(spec.Steps), "elapsed", time.Since(start).Round(time.Millisecond))
	return result
}

// resolveInputs builds a step's raw parameter map: literals pass through
// unchanged, references are substituted with the referenced step's payload
// field. Compile guarantees the referenced field is declared; a node that
// omits a declared field at runtime simply contributes a nil value, which the
// validator then reports against the consuming step's schema.
func (r *ChainRunner) resolveInputs(step domain.ChainStep, outcomes map[string]domain.Result) map[string]any {
	raw := make(map[string]any, len(step.Inputs))
	for param, in := range step.Inputs {
		if in.Ref == nil {
			raw[param] = in.Literal
			continue
		}
		if v, ok := outcomes[in.Ref.Step].Field(in.Ref.Field); ok {
			raw[param] = v
		}
	}
	return raw
}
