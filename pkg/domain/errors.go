package domain

import "errors"

// ErrNodeNotFound is returned when a registry lookup misses.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when a node registers under a name that is
// already taken. Treated as fatal at startup.
var ErrDuplicateNode = errors.New("duplicate node name")

// ErrRegistryFrozen is returned when Register is called after discovery has
// completed.
var ErrRegistryFrozen = errors.New("registry is frozen")

// ErrChainNotFound is returned when a named chain is not defined.
var ErrChainNotFound = errors.New("chain not found")
