// Package orchestron is a plugin-dispatch framework for action nodes.
//
// A node is a self-describing unit of work: it declares its name, its
// parameter schema and its output fields through a Descriptor, and performs
// a single action when executed. The framework validates raw parameters
// against the schema before any node code runs, resolves per-node
// configuration, and always reports the outcome as a structured Result.
//
// Nodes are registered explicitly at startup:
//
//	fw, err := orchestron.New(
//		orchestron.WithNodes(mail.NewGetter(), mail.NewSender(), store.NewWriter()),
//		orchestron.WithConfigProvider(cfg),
//	)
//
// Chains compose registered nodes into declarative sequences. A chain step
// may feed a parameter from an earlier step's payload using a "$step.field"
// reference; references are checked against descriptor outputs when the
// chain is compiled, before anything executes.
package orchestron
