package domain

// FilterKind selects which view restriction is active. Exactly one filter
// applies at a time; activating one replaces the previous.
type FilterKind int

const (
	// FilterNone shows the full history.
	FilterNone FilterKind = iota

	// FilterQuery restricts the list to fuzzy matches of a query string.
	FilterQuery

	// FilterTemporary lists temporary registers.
	FilterTemporary

	// FilterPermanent lists permanent registers.
	FilterPermanent

	// FilterPinned restricts the list to pinned clips.
	FilterPinned
)

// Filter is the single active view restriction.
type Filter struct {
	Kind  FilterKind
	Query string
}

// Active reports whether any restriction is in effect.
func (f Filter) Active() bool { return f.Kind != FilterNone }

// Label returns the short status-line description of the filter.
func (f Filter) Label() string {
	switch f.Kind {
	case FilterQuery:
		return "filter: /" + f.Query
	case FilterTemporary:
		return "filter: temporary registers"
	case FilterPermanent:
		return "filter: permanent registers"
	case FilterPinned:
		return "filter: pinned"
	default:
		return ""
	}
}
