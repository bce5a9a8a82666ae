// Package sqlite provides SQLite-backed persistence for clip history and
// temporary registers. Uses modernc.org/sqlite (pure Go, no CGO).
//
// Saves are whole-snapshot rewrites inside a single transaction, so a
// crash mid-save leaves the previous snapshot intact. A corrupt database
// is moved aside and recreated empty at startup.
package sqlite
