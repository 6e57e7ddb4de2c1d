// Package testutils provides in-memory node doubles for tests.
package testutils

import (
	"context"
	"sync/atomic"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// StubNode is a scriptable Node implementation that records invocations.
type StubNode struct {
	Desc domain.Descriptor

	// Result is returned from Execute unless Err or Panic is set.
	Result domain.Result
	Err    error
	Panic  any

	calls      atomic.Int64
	LastParams schema.Params
	LastConfig domain.Config
}

// NewStub builds a stub with a minimal descriptor.
func NewStub(name string, params []domain.ParameterSpec, outputs []string) *StubNode {
	return &StubNode{
		Desc: domain.Descriptor{
			Name:       name,
			Parameters: params,
			Outputs:    outputs,
		},
		Result: domain.Success(map[string]any{}),
	}
}

func (s *StubNode) Describe() domain.Descriptor { return s.Desc }

func (s *StubNode) Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error) {
	s.calls.Add(1)
	s.LastParams = params
	s.LastConfig = cfg
	if s.Panic != nil {
		panic(s.Panic)
	}
	if s.Err != nil {
		return domain.Result{}, s.Err
	}
	return s.Result, nil
}

// Calls reports how many times Execute ran.
func (s *StubNode) Calls() int { return int(s.calls.Load()) }
