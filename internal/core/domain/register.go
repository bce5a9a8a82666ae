package domain

import "time"

// RegisterKind distinguishes configuration-sourced registers from ones
// created interactively.
type RegisterKind int

const (
	// RegisterTemporary is a register created at runtime with the mark
	// operation. Mutable and deletable.
	RegisterTemporary RegisterKind = iota

	// RegisterPermanent is a register defined in configuration. Read-only
	// through the interactive surface.
	RegisterPermanent
)

// RegisterNames is the number of addressable register slots.
const RegisterNames = 52

// ValidRegisterName reports whether b is one of the 52 case-sensitive
// single-letter register names.
func ValidRegisterName(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Register is a named slot holding a snapshot of clip content. The content
// is copied at mark time, so later history mutations never change what a
// register pastes.
type Register struct {
	// Name is the single-letter register name, case-sensitive.
	Name byte

	// Kind is permanent or temporary.
	Kind RegisterKind

	// Content is the stored payload snapshot.
	Content Content

	// CreatedAt is when the register was first written.
	CreatedAt time.Time

	// UpdatedAt is when the register content last changed.
	UpdatedAt time.Time
}
