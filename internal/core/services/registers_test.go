package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/clipr-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

func newRegisterFixture(t *testing.T, defs []domain.PermanentRegisterDef) (*RegisterService, *HistoryService, *memory.RegisterStore) {
	t.Helper()
	ctx := context.Background()
	history := NewHistoryService(ctx, memory.NewHistoryStore(), 10)
	store := memory.NewRegisterStore()
	return NewRegisterService(ctx, store, history, defs), history, store
}

func TestSetTemporaryValidatesName(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, regs.SetTemporary(ctx, 'a', domain.TextContent("x")))
	assert.ErrorIs(t, regs.SetTemporary(ctx, '1', domain.TextContent("x")), domain.ErrInvalidRegisterName)
}

func TestSetTemporaryOverwrites(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, regs.SetTemporary(ctx, 'a', domain.TextContent("first")))
	require.NoError(t, regs.SetTemporary(ctx, 'a', domain.TextContent("second")))

	reg, err := regs.Lookup(ctx, 'a')
	require.NoError(t, err)
	assert.Equal(t, "second", reg.Content.Text)
}

func TestPermanentWinsCollision(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, []domain.PermanentRegisterDef{
		{Name: 'e', Content: "configured email"},
	})
	ctx := context.Background()

	require.NoError(t, regs.SetTemporary(ctx, 'e', domain.TextContent("runtime value")))

	reg, err := regs.Lookup(ctx, 'e')
	require.NoError(t, err)
	assert.Equal(t, domain.RegisterPermanent, reg.Kind)
	assert.Equal(t, "configured email", reg.Content.Text)

	// Shadowed temporary is hidden from both listings.
	for _, perm := range regs.List(ctx, domain.RegisterPermanent) {
		assert.Equal(t, domain.RegisterPermanent, perm.Kind)
	}
	assert.Empty(t, regs.List(ctx, domain.RegisterTemporary))
}

func TestShadowedTemporaryReappearsAfterReload(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, []domain.PermanentRegisterDef{
		{Name: 'e', Content: "configured"},
	})
	ctx := context.Background()

	require.NoError(t, regs.SetTemporary(ctx, 'e', domain.TextContent("shadowed")))
	regs.ReloadPermanent(ctx, nil)

	reg, err := regs.Lookup(ctx, 'e')
	require.NoError(t, err)
	assert.Equal(t, domain.RegisterTemporary, reg.Kind)
	assert.Equal(t, "shadowed", reg.Content.Text)
}

func TestDeleteTemporary(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, []domain.PermanentRegisterDef{
		{Name: 'p', Content: "locked"},
	})
	ctx := context.Background()

	require.NoError(t, regs.SetTemporary(ctx, 'a', domain.TextContent("x")))
	require.NoError(t, regs.DeleteTemporary(ctx, 'a'))
	_, err := regs.Lookup(ctx, 'a')
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, regs.DeleteTemporary(ctx, 'p'), domain.ErrPermanentRegisterImmutable)
	assert.ErrorIs(t, regs.DeleteTemporary(ctx, 'z'), domain.ErrNotFound)
}

func TestMarkClipRoundTripAcrossReload(t *testing.T) {
	regs, history, store := newRegisterFixture(t, nil)
	ctx := context.Background()

	id, err := history.Capture(ctx, domain.TextContent("marked content"))
	require.NoError(t, err)

	require.NoError(t, regs.MarkClip(ctx, 'q', id))

	clip, err := history.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, byte('q'), clip.Register)

	require.NoError(t, regs.Flush(ctx))

	reloaded := NewRegisterService(ctx, store, history, nil)
	reg, err := reloaded.Lookup(ctx, 'q')
	require.NoError(t, err)
	assert.Equal(t, "marked content", reg.Content.Text)
	assert.Equal(t, domain.RegisterTemporary, reg.Kind)
}

func TestMarkedRegisterSurvivesClipEviction(t *testing.T) {
	regs, history, _ := newRegisterFixture(t, nil)
	ctx := context.Background()

	id, err := history.Capture(ctx, domain.TextContent("snapshot"))
	require.NoError(t, err)
	require.NoError(t, regs.MarkClip(ctx, 'k', id))

	require.NoError(t, history.Remove(ctx, id))

	reg, err := regs.Lookup(ctx, 'k')
	require.NoError(t, err)
	assert.Equal(t, "snapshot", reg.Content.Text)
}

// slowRegisterStore runs a callback mid-save, simulating a mutation that
// lands while a flush is writing.
type slowRegisterStore struct {
	*memory.RegisterStore
	onSave func()
}

func (s *slowRegisterStore) Save(ctx context.Context, regs []domain.Register) error {
	if s.onSave != nil {
		hook := s.onSave
		s.onSave = nil
		hook()
	}
	return s.RegisterStore.Save(ctx, regs)
}

func TestFlushKeepsDirtyForMidSaveMutation(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryService(ctx, memory.NewHistoryStore(), 10)
	store := &slowRegisterStore{RegisterStore: memory.NewRegisterStore()}
	regs := NewRegisterService(ctx, store, history, nil)

	require.NoError(t, regs.SetTemporary(ctx, 'a', domain.TextContent("first")))

	store.onSave = func() {
		require.NoError(t, regs.SetTemporary(ctx, 'b', domain.TextContent("second")))
	}

	require.NoError(t, regs.Flush(ctx))
	require.NoError(t, regs.Flush(ctx))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, byte('a'), saved[0].Name)
	assert.Equal(t, byte('b'), saved[1].Name)
}

func TestListSortedByName(t *testing.T) {
	regs, _, _ := newRegisterFixture(t, nil)
	ctx := context.Background()

	for _, name := range []byte{'z', 'a', 'M'} {
		require.NoError(t, regs.SetTemporary(ctx, name, domain.TextContent("x")))
	}

	out := regs.List(ctx, domain.RegisterTemporary)
	require.Len(t, out, 3)
	assert.Equal(t, byte('M'), out[0].Name)
	assert.Equal(t, byte('a'), out[1].Name)
	assert.Equal(t, byte('z'), out[2].Name)
}
