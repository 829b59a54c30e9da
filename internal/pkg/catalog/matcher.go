package catalog

import (
	"github.com/ougirez/covidtrack/internal/domain"
	"github.com/ougirez/covidtrack/internal/pkg/cleaning"
)

// Outcome classifies a resolution attempt.
type Outcome int

const (
	// Matched means the names resolved to a catalog entry.
	Matched Outcome = iota
	// Ignored means the cleaning rules deliberately drop this location.
	Ignored
	// Unmatched means no catalog entry was found even after cleaning.
	// This is an operator-visible gap in the rule tables.
	Unmatched
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Ignored:
		return "ignored"
	default:
		return "unmatched"
	}
}

// Matcher resolves raw report name tuples to catalog regions.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(c *Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// Resolve tries an exact lookup first, then reruns it on the
// canonicalized tuple. The Ignored and Unmatched outcomes are distinct:
// callers must not warn about ignored locations.
func (m *Matcher) Resolve(names domain.RegionNames) (*domain.RegionInfo, Outcome) {
	if info, ok := m.catalog.Lookup(names); ok {
		return info, Matched
	}

	canonical, ok := cleaning.CanonicalLocation(names)
	if !ok {
		return nil, Ignored
	}

	if info, ok := m.catalog.Lookup(canonical); ok {
		return info, Matched
	}

	return nil, Unmatched
}
