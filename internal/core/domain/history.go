package domain

import "sort"

// FormatVersion tags the persisted history layout for forward migration.
const FormatVersion = 1

// DefaultMaxUnpinned is the history ceiling used when configuration does
// not supply one.
const DefaultMaxUnpinned = 1000

// History is the bounded, ordered collection of captured clips. It owns
// rotation, adjacent deduplication and pin exemption. History itself is
// not goroutine-safe; the history service provides the synchronization
// boundary.
type History struct {
	clips       []Clip // newest first
	maxUnpinned int
	nextID      uint64
}

// NewHistory creates an empty history with the given ceiling for unpinned
// clips. Non-positive ceilings fall back to the default.
func NewHistory(maxUnpinned int) *History {
	if maxUnpinned <= 0 {
		maxUnpinned = DefaultMaxUnpinned
	}
	return &History{maxUnpinned: maxUnpinned, nextID: 1}
}

// RestoreHistory rebuilds a history from persisted clips. Clips are
// re-sorted newest first and the ID counter resumes past the highest
// persisted ID, so restarts never reuse identifiers.
func RestoreHistory(clips []Clip, maxUnpinned int) *History {
	h := NewHistory(maxUnpinned)
	h.clips = append(h.clips, clips...)
	sort.SliceStable(h.clips, func(i, j int) bool {
		return h.clips[i].CapturedAt.After(h.clips[j].CapturedAt)
	})
	for _, c := range h.clips {
		if c.ID >= h.nextID {
			h.nextID = c.ID + 1
		}
	}
	h.rotate()
	return h
}

// Capture inserts new content at the head and enforces the ceiling.
// It returns ErrDuplicateOfLatest if the content's fingerprint equals the
// current head clip's fingerprint; older duplicates elsewhere in history
// are deliberately retained.
func (h *History) Capture(content Content) (uint64, error) {
	fp := content.Fingerprint()
	if len(h.clips) > 0 && h.clips[0].Fingerprint == fp {
		return h.clips[0].ID, ErrDuplicateOfLatest
	}

	clip := NewClip(h.nextID, content)
	h.nextID++
	h.clips = append([]Clip{clip}, h.clips...)
	h.rotate()
	return clip.ID, nil
}

// Remove deletes a clip unconditionally, pinned or not.
func (h *History) Remove(id uint64) error {
	for i := range h.clips {
		if h.clips[i].ID == id {
			h.clips = append(h.clips[:i], h.clips[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// TogglePin flips the pinned flag and returns the new state.
func (h *History) TogglePin(id uint64) (bool, error) {
	for i := range h.clips {
		if h.clips[i].ID == id {
			h.clips[i].Pinned = !h.clips[i].Pinned
			return h.clips[i].Pinned, nil
		}
	}
	return false, ErrNotFound
}

// AssignRegister sets the clip's register letter. It does not create the
// register entry itself; that coordination lives in the register service.
func (h *History) AssignRegister(id uint64, name byte) error {
	if !ValidRegisterName(name) {
		return ErrInvalidRegisterName
	}
	for i := range h.clips {
		if h.clips[i].ID == id {
			h.clips[i].Register = name
			return nil
		}
	}
	return ErrNotFound
}

// ClearRegister drops the given register letter from any clip that carries
// it, used when the register is reassigned or deleted.
func (h *History) ClearRegister(name byte) {
	for i := range h.clips {
		if h.clips[i].Register == name {
			h.clips[i].Register = 0
		}
	}
}

// ClearUnpinned removes every non-pinned clip and returns how many were
// removed.
func (h *History) ClearUnpinned() int {
	kept := h.clips[:0]
	removed := 0
	for _, c := range h.clips {
		if c.Pinned {
			kept = append(kept, c)
		} else {
			removed++
		}
	}
	h.clips = kept
	return removed
}

// Get returns a copy of the clip with the given ID.
func (h *History) Get(id uint64) (Clip, bool) {
	for i := range h.clips {
		if h.clips[i].ID == id {
			return h.clips[i], true
		}
	}
	return Clip{}, false
}

// List returns a copy of all clips, newest first.
func (h *History) List() []Clip {
	out := make([]Clip, len(h.clips))
	copy(out, h.clips)
	return out
}

// Len returns the total clip count, pinned included.
func (h *History) Len() int { return len(h.clips) }

// UnpinnedLen returns the count of clips subject to rotation.
func (h *History) UnpinnedLen() int {
	n := 0
	for _, c := range h.clips {
		if !c.Pinned {
			n++
		}
	}
	return n
}

// MaxUnpinned returns the configured ceiling.
func (h *History) MaxUnpinned() int { return h.maxUnpinned }

// rotate enforces the ceiling by dropping the oldest unpinned clips.
// Pinned clips are skipped and kept regardless of position. The clips
// slice is newest first, so a single reverse walk removes the excess
// oldest entries first.
func (h *History) rotate() {
	excess := h.UnpinnedLen() - h.maxUnpinned
	if excess <= 0 {
		return
	}
	for i := len(h.clips) - 1; i >= 0 && excess > 0; i-- {
		if h.clips[i].Pinned {
			continue
		}
		h.clips = append(h.clips[:i], h.clips[i+1:]...)
		excess--
	}
}
