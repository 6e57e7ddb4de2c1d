package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	orchestron "github.com/orchestron-dev/orchestron"
	"github.com/orchestron-dev/orchestron/internal/runtime"
	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// ErrRunFailed marks a run whose result was printed but whose outcome was a
// failure. Commands map it to a non-zero exit code without printing twice.
var ErrRunFailed = errors.New("run failed")

// RunNode executes one node with parameters parsed from key=value pairs and
// prints its structured result.
func RunNode(ctx context.Context, fw *orchestron.Framework, w io.Writer, name string, pairs []string) error {
	raw, err := ParseParams(pairs)
	if err != nil {
		return err
	}

	res := fw.Run(ctx, name, raw)
	if err := PrintResult(w, res); err != nil {
		return err
	}
	if !res.OK {
		return ErrRunFailed
	}
	return nil
}

// RunChain executes a registered chain, applying any step.param overrides,
// and prints the per-step trace with the aggregate.
func RunChain(ctx context.Context, fw *orchestron.Framework, w io.Writer, name string, overridePairs []string) error {
	overrides, err := ParseOverrides(overridePairs)
	if err != nil {
		return err
	}

	var res runtime.ChainResult
	if len(overrides) == 0 {
		res, err = fw.RunChain(ctx, name)
		if err != nil {
			return err
		}
	} else {
		spec, ok := fw.Chain(name)
		if !ok {
			return fmt.Errorf("run chain %q: %w", name, domain.ErrChainNotFound)
		}
		res = fw.RunChainSpec(ctx, ApplyOverrides(spec, overrides))
	}

	if err := PrintChainResult(w, res); err != nil {
		return err
	}
	if res.Status != runtime.ChainSucceeded {
		return ErrRunFailed
	}
	return nil
}

// ApplyOverrides returns a copy of a chain definition with literal inputs
// replaced per step. Overrides may introduce parameters a step never wired,
// but they cannot touch steps that do not exist.
func ApplyOverrides(spec domain.ChainSpec, overrides map[string]map[string]any) domain.ChainSpec {
	out := spec
	out.Steps = make([]domain.ChainStep, len(spec.Steps))
	for i, step := range spec.Steps {
		copied := step
		copied.Inputs = make(map[string]domain.Input, len(step.Inputs))
		for k, v := range step.Inputs {
			copied.Inputs[k] = v
		}
		for param, value := range overrides[step.Name()] {
			copied.Inputs[param] = domain.Input{Literal: value}
		}
		out.Steps[i] = copied
	}
	return out
}

// ListNodes prints the node catalog, styled when attached to a terminal.
func ListNodes(fw *orchestron.Framework, w io.Writer) error {
	return RenderMarkdown(w, NodeListMarkdown(fw.Descriptors()))
}

// ListChains prints the chain catalog.
func ListChains(fw *orchestron.Framework, w io.Writer) error {
	return RenderMarkdown(w, ChainListMarkdown(fw.Chains()))
}
