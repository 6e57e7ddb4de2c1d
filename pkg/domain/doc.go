/*
Package domain contains the core domain models for the Orchestron engine.

It defines the fundamental entities of node dispatch: descriptors, parameter
specs, execution results, and chain definitions. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Descriptor: Static metadata describing a node's name, config needs,
    parameter schema and payload fields.
  - Result: The tagged outcome of a node invocation (Success payload or
    classified Failure).
  - ChainSpec: A named, ordered sequence of node invocations with data
    threaded from step to step via $step.field references.
*/
package domain
