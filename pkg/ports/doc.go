/*
Package ports defines the driven ports (interfaces) for the Orchestron engine.

These interfaces decouple the core dispatch logic from external collaborators,
allowing nodes and configuration sources to be swapped without touching the
runtime.

# Key Interfaces

  - Node: The contract every action node implements (metadata + execution).
  - ConfigProvider: Resolves the merged configuration mapping for a node.
*/
package ports
