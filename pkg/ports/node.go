package ports

import (
	"context"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// Node is the contract every action node implements.
//
// Describe must be pure and stable across calls. Execute performs the node's
// side-effecting work; expected failure modes (auth, connection, write,
// missing config) come back as a failed Result, while a non-nil error is
// reserved for unexpected faults, which the Executor converts into an
// InternalError failure. Execute never observes raw input: parameters arrive
// already validated against the descriptor's schema.
type Node interface {
	Describe() domain.Descriptor
	Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error)
}

// FuncNode adapts a descriptor and a function into a Node. Useful for tests
// and for small inline nodes.
type FuncNode struct {
	Desc domain.Descriptor
	Fn   func(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error)
}

func (n FuncNode) Describe() domain.Descriptor { return n.Desc }

func (n FuncNode) Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error) {
	return n.Fn(ctx, params, cfg)
}
