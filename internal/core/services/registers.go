package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// Ensure RegisterService implements the interface.
var _ driving.RegisterService = (*RegisterService)(nil)

// RegisterService manages the merged permanent/temporary register
// namespace. Permanent registers come from configuration and shadow
// same-named temporaries, which stay persisted but unreachable until the
// permanent definition is removed from the config file.
type RegisterService struct {
	mu        sync.Mutex
	temporary map[byte]domain.Register
	permanent map[byte]domain.Register
	store     driven.RegisterStore
	history   driving.HistoryService
	dirty     bool
	gen       uint64 // bumped on every mutation, guards dirty against lost updates
}

// NewRegisterService loads persisted temporary registers and installs the
// configured permanent set.
func NewRegisterService(ctx context.Context, store driven.RegisterStore, history driving.HistoryService, defs []domain.PermanentRegisterDef) *RegisterService {
	s := &RegisterService{
		temporary: make(map[byte]domain.Register),
		permanent: make(map[byte]domain.Register),
		store:     store,
		history:   history,
	}

	regs, err := store.Load(ctx)
	if err != nil {
		logger.Warn("register load failed, starting empty: %v", err)
		regs = nil
	}
	for _, r := range regs {
		if r.Kind == domain.RegisterTemporary && domain.ValidRegisterName(r.Name) {
			s.temporary[r.Name] = r
		}
	}

	s.installPermanent(defs)
	return s
}

// MarkClip snapshots the clip's content into the named temporary register
// and records the letter on the clip.
func (s *RegisterService) MarkClip(ctx context.Context, name byte, clipID uint64) error {
	clip, err := s.history.Get(ctx, clipID)
	if err != nil {
		return fmt.Errorf("marking clip %d: %w", clipID, err)
	}
	if err := s.SetTemporary(ctx, name, clip.Content); err != nil {
		return err
	}
	return s.history.AssignRegister(ctx, clipID, name)
}

// SetTemporary creates or overwrites a temporary register.
func (s *RegisterService) SetTemporary(_ context.Context, name byte, content domain.Content) error {
	if !domain.ValidRegisterName(name) {
		return domain.ErrInvalidRegisterName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	reg, ok := s.temporary[name]
	if !ok {
		reg = domain.Register{Name: name, Kind: domain.RegisterTemporary, CreatedAt: now}
	}
	reg.Content = content
	reg.UpdatedAt = now
	s.temporary[name] = reg
	s.markDirty()
	return nil
}

// DeleteTemporary removes a temporary register.
func (s *RegisterService) DeleteTemporary(_ context.Context, name byte) error {
	if !domain.ValidRegisterName(name) {
		return domain.ErrInvalidRegisterName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.permanent[name]; ok {
		return domain.ErrPermanentRegisterImmutable
	}
	if _, ok := s.temporary[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.temporary, name)
	s.markDirty()
	return nil
}

// Lookup resolves a register name; permanent definitions win collisions.
func (s *RegisterService) Lookup(_ context.Context, name byte) (domain.Register, error) {
	if !domain.ValidRegisterName(name) {
		return domain.Register{}, domain.ErrInvalidRegisterName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reg, ok := s.permanent[name]; ok {
		return reg, nil
	}
	if reg, ok := s.temporary[name]; ok {
		return reg, nil
	}
	return domain.Register{}, domain.ErrNotFound
}

// List returns registers of one kind, sorted by name. Temporaries shadowed
// by a permanent register are omitted, keeping the two listings disjoint.
func (s *RegisterService) List(_ context.Context, kind domain.RegisterKind) []domain.Register {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Register
	switch kind {
	case domain.RegisterPermanent:
		for _, reg := range s.permanent {
			out = append(out, reg)
		}
	case domain.RegisterTemporary:
		for name, reg := range s.temporary {
			if _, shadowed := s.permanent[name]; shadowed {
				continue
			}
			out = append(out, reg)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ReloadPermanent replaces the permanent register set, used when the
// config file changes.
func (s *RegisterService) ReloadPermanent(_ context.Context, defs []domain.PermanentRegisterDef) {
	s.installPermanent(defs)
}

func (s *RegisterService) installPermanent(defs []domain.PermanentRegisterDef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.permanent = make(map[byte]domain.Register, len(defs))
	for _, def := range defs {
		if !domain.ValidRegisterName(def.Name) {
			logger.Warn("ignoring permanent register with invalid name %q", string(def.Name))
			continue
		}
		s.permanent[def.Name] = domain.Register{
			Name:      def.Name,
			Kind:      domain.RegisterPermanent,
			Content:   domain.TextContent(def.Content),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
}

// markDirty must be called with the mutex held.
func (s *RegisterService) markDirty() {
	s.dirty = true
	s.gen++
}

// Flush persists temporary registers if mutations occurred since the last
// flush.
func (s *RegisterService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	regs := make([]domain.Register, 0, len(s.temporary))
	for _, reg := range s.temporary {
		regs = append(regs, reg)
	}
	gen := s.gen
	s.mu.Unlock()

	sort.Slice(regs, func(i, j int) bool { return regs[i].Name < regs[j].Name })
	if err := s.store.Save(ctx, regs); err != nil {
		return fmt.Errorf("saving registers: %w", err)
	}

	// A mutation may have landed while Save ran; it is not in the saved
	// snapshot, so the service stays dirty for the next flush.
	s.mu.Lock()
	if s.gen == gen {
		s.dirty = false
	}
	s.mu.Unlock()
	return nil
}
