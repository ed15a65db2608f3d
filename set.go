package cleaner

import "sort"

// Set is a string set with the few operations the engine needs.
type Set map[string]struct{}

// Add inserts v.
func (s Set) Add(v string) { s[v] = struct{}{} }

// Remove drops v if present.
func (s Set) Remove(v string) { delete(s, v) }

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Sorted returns the members in ascending order, for stable output.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}
