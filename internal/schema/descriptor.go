// Package schema is the static catalog of every documented profile
// setting: declared kind, valid domain, default, display metadata, and
// search aliases.
package schema

import "github.com/tstetson/fieldtuner/internal/codec"

// Member is one allowed value of an enum setting with its display label.
type Member struct {
	Value string
	Label string
}

// Descriptor is the immutable schema entry for one setting key.
// Min/Max bound int and float kinds; Members lists enum values. A soft
// range clamps out-of-range values with a warning, a hard range
// rejects them.
type Descriptor struct {
	Key         string
	Kind        codec.Kind
	Label       string
	Category    string
	Subcategory string
	Tooltip     string
	Default     string
	Min         float64
	Max         float64
	HardRange   bool
	Members     []Member
	Aliases     []string
}

// MemberValues returns the allowed enum values in declaration order.
func (d *Descriptor) MemberValues() []string {
	out := make([]string, len(d.Members))
	for i, m := range d.Members {
		out[i] = m.Value
	}
	return out
}

// HasRange reports whether the descriptor declares numeric bounds.
func (d *Descriptor) HasRange() bool {
	return d.Kind == codec.KindInt || d.Kind == codec.KindFloat
}

// MatchesAlias reports whether name equals the key or one of the
// aliases. Lookup is exact; fuzzy matching belongs to the search
// collaborator, not the schema.
func (d *Descriptor) MatchesAlias(name string) bool {
	if name == d.Key {
		return true
	}
	for _, a := range d.Aliases {
		if a == name {
			return true
		}
	}
	return false
}
