package driving

import (
	"context"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// RegisterService manages the merged permanent/temporary register
// namespace.
type RegisterService interface {
	// MarkClip stores the clip's content in the named temporary register
	// and records the letter on the clip.
	MarkClip(ctx context.Context, name byte, clipID uint64) error

	// SetTemporary creates or overwrites a temporary register.
	SetTemporary(ctx context.Context, name byte, content domain.Content) error

	// DeleteTemporary removes a temporary register. Returns
	// domain.ErrPermanentRegisterImmutable if the name is claimed by a
	// permanent register.
	DeleteTemporary(ctx context.Context, name byte) error

	// Lookup resolves a register name; permanent definitions shadow
	// temporary ones.
	Lookup(ctx context.Context, name byte) (domain.Register, error)

	// List returns registers of one kind, sorted by name. A permanent
	// register shadows a same-named temporary in the temporary listing.
	List(ctx context.Context, kind domain.RegisterKind) []domain.Register

	// ReloadPermanent replaces the permanent register set from new
	// configuration.
	ReloadPermanent(ctx context.Context, defs []domain.PermanentRegisterDef)

	// Flush persists temporary registers if mutations occurred since the
	// last flush.
	Flush(ctx context.Context) error
}
