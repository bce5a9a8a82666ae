// Package memory provides in-memory implementations of the persistence
// ports, used in tests and when persistence is disabled.
package memory
