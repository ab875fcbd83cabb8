// Package pagination slices result sets into fixed-size pages.
package pagination

// State is the current page position. Current is 1-indexed.
type State struct {
	Current int `json:"current_page"`
	Size    int `json:"page_size"`
}

// New returns a State on page 1
func New(size int) State {
	if size < 1 {
		size = 1
	}
	return State{Current: 1, Size: size}
}

// TotalPages is ceil(count/Size), never less than 1
func (s State) TotalPages(count int) int {
	if count <= 0 || s.Size <= 0 {
		return 1
	}
	return (count + s.Size - 1) / s.Size
}

// Reset moves back to page 1
func (s *State) Reset() {
	s.Current = 1
}

// Advance moves by delta pages when the target lies in [1, TotalPages(count)].
// Out-of-range moves leave the state unchanged and report false.
func (s *State) Advance(delta, count int) bool {
	target := s.Current + delta
	if target < 1 || target > s.TotalPages(count) {
		return false
	}
	s.Current = target
	return true
}

// HasPrev reports whether Advance(-1) would move
func (s State) HasPrev() bool {
	return s.Current > 1
}

// HasNext reports whether Advance(+1) would move
func (s State) HasNext(count int) bool {
	return s.Current < s.TotalPages(count)
}

// Page returns the items on the current page, clamped to the available
// length. A page starting past the end is empty.
func Page[T any](items []T, s State) []T {
	if s.Size <= 0 || s.Current < 1 {
		return nil
	}
	start := (s.Current - 1) * s.Size
	if start >= len(items) {
		return nil
	}
	end := min(start+s.Size, len(items))
	return items[start:end:end]
}
