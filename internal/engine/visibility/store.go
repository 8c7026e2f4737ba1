// Package visibility tracks which series are shown.
package visibility

import (
	"github.com/linescope/linescope/internal/utils"
)

// Store holds one flag per series, indexed like the dataset.
type Store struct {
	flags []bool
}

// NewStore returns a store with n visible series.
func NewStore(n int) *Store {
	s := &Store{}
	s.Reset(n)
	return s
}

// Toggle sets the flag of series i. Out-of-range indices are rejected and
// leave the store unchanged.
func (s *Store) Toggle(i int, visible bool) bool {
	if i < 0 || i >= len(s.flags) {
		utils.Debug("visibility: rejected toggle of series %d (have %d)", i, len(s.flags))
		return false
	}
	s.flags[i] = visible
	return true
}

// Flip inverts the flag of series i.
func (s *Store) Flip(i int) bool {
	if i < 0 || i >= len(s.flags) {
		return false
	}
	return s.Toggle(i, !s.flags[i])
}

// Reset makes all n series visible.
func (s *Store) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.flags = make([]bool, n)
	for i := range s.flags {
		s.flags[i] = true
	}
}

// Sync resets the store when the series count changed and reports whether it
// did.
func (s *Store) Sync(n int) bool {
	if n == len(s.flags) {
		return false
	}
	s.Reset(n)
	return true
}

// Visible reports whether series i is shown. Unknown series are hidden.
func (s *Store) Visible(i int) bool {
	return i >= 0 && i < len(s.flags) && s.flags[i]
}

// Flags returns a copy of all flags.
func (s *Store) Flags() []bool {
	return append([]bool{}, s.flags...)
}

// Len returns the number of tracked series.
func (s *Store) Len() int { return len(s.flags) }

// VisibleCount returns how many series are shown.
func (s *Store) VisibleCount() int {
	n := 0
	for _, f := range s.flags {
		if f {
			n++
		}
	}
	return n
}
