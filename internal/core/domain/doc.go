// Package domain contains the core business entities for clipr:
// clips, the bounded clipboard history, registers, and filters.
// It has no dependencies on adapters or external services.
package domain
