package models

import (
	"encoding/json"
	"fmt"
)

// SeenSet holds titles already shown to a visitor.
//
// Membership has set semantics; iteration follows insertion order so the persisted array and the preview stay stable.
// The zero value is an empty set ready to use.
type SeenSet struct {
	order []string
	index map[string]struct{}
}

// NewSeenSet builds a set from titles, dropping duplicates.
func NewSeenSet(titles ...string) *SeenSet {
	s := &SeenSet{}
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

// Add inserts title and reports whether it was new.
func (s *SeenSet) Add(title string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[title]; ok {
		return false
	}
	s.index[title] = struct{}{}
	s.order = append(s.order, title)
	return true
}

func (s *SeenSet) Has(title string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[title]
	return ok
}

func (s *SeenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Titles returns a copy of the members in insertion order.
func (s *SeenSet) Titles() []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s.order...)
}

// Preview returns at most n titles and whether more were left out.
func (s *SeenSet) Preview(n int) ([]string, bool) {
	titles := s.Titles()
	if n < 0 || len(titles) <= n {
		return titles, false
	}
	return titles[:n], true
}

// CountIn returns how many members are keys of c. Stale titles from an older catalog are skipped.
func (s *SeenSet) CountIn(c Catalog) int {
	n := 0
	for _, t := range s.Titles() {
		if _, ok := c[t]; ok {
			n++
		}
	}
	return n
}

func (s *SeenSet) Clone() *SeenSet {
	return NewSeenSet(s.Titles()...)
}

// Equal compares membership only.
func (s *SeenSet) Equal(other *SeenSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.Titles() {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array of titles.
func (s *SeenSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Titles())
}

// UnmarshalJSON replaces the set with the titles in a JSON array.
func (s *SeenSet) UnmarshalJSON(data []byte) error {
	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		return fmt.Errorf("failed to decode seen set: %w", err)
	}
	*s = *NewSeenSet(titles...)
	return nil
}
