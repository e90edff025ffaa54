package calendar

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NameMatcher matches names (e.g., months or weekdays) case-insensitively.
//
// When one candidate is a prefix of another, the longer one always wins,
// regardless of the order of the lists.
type NameMatcher struct {
	re    *regexp.Regexp
	sets  [][]string
	index map[string][]int // folded name -> index per set (-1 if absent)
}

// NewNameMatcher builds a matcher over one or more parallel name lists. The
// regexp is anchored at the start of the input.
func NewNameMatcher(sets ...[]string) *NameMatcher {
	m := &NameMatcher{
		sets:  sets,
		index: map[string][]int{},
	}
	var pieces []string
	seen := map[string]bool{}
	for si, set := range sets {
		for i, name := range set {
			if name == "" {
				continue
			}
			k := foldName(name)
			if _, ok := m.index[k]; !ok {
				m.index[k] = slices.Repeat([]int{-1}, len(sets))
			}
			if m.index[k][si] == -1 {
				m.index[k][si] = i
			}
			if p := regexp.QuoteMeta(norm.NFC.String(name)); !seen[p] {
				seen[p] = true
				pieces = append(pieces, p)
			}
		}
	}
	slices.SortStableFunc(pieces, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	if len(pieces) == 0 {
		m.re = regexp.MustCompile(`^\b\B`) // never matches
	} else {
		m.re = regexp.MustCompile(`(?i)^(?:` + strings.Join(pieces, "|") + `)`)
	}
	return m
}

// Regexp returns the longest-first regexp for all names.
func (m *NameMatcher) Regexp() *regexp.Regexp {
	return m.re
}

// Match returns the longest name at the start of s, if any.
func (m *NameMatcher) Match(s string) (string, bool) {
	loc := m.re.FindStringIndex(norm.NFC.String(s))
	if loc == nil {
		return "", false
	}
	return norm.NFC.String(s)[loc[0]:loc[1]], true
}

// Index returns the position of name in the first set (in set order) which
// contains it.
func (m *NameMatcher) Index(name string) (int, bool) {
	if idx, ok := m.index[foldName(name)]; ok {
		for _, i := range idx {
			if i != -1 {
				return i, true
			}
		}
	}
	return -1, false
}

// IndexIn returns the position of name in the specified set.
func (m *NameMatcher) IndexIn(set int, name string) (int, bool) {
	if idx, ok := m.index[foldName(name)]; ok && set < len(idx) && idx[set] != -1 {
		return idx[set], true
	}
	return -1, false
}

func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s))) // casers aren't safe for concurrent use
}
