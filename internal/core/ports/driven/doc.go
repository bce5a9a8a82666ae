// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Clipboard: system clipboard read/write
//   - HistoryStore: clip history persistence
//   - RegisterStore: temporary register persistence
//   - ConfigSource: application configuration and change notification
package driven
