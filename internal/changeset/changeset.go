// Package changeset computes the delta between a loaded profile
// baseline and a proposed set of edits. Presets and manual edits flow
// through the same path, so both obey the same invariants: no
// duplicate keys, no-op edits excluded, deterministic order.
package changeset

import (
	"sort"

	"github.com/tstetson/fieldtuner/internal/codec"
	"github.com/tstetson/fieldtuner/internal/profile"
	"github.com/tstetson/fieldtuner/internal/schema"
	"github.com/tstetson/fieldtuner/internal/validate"
)

// Change is one proposed key edit. OldRaw is the baseline text ("" for
// keys the baseline lacks); Old is its decoded form when the baseline
// value decodes against the catalog.
type Change struct {
	Key    string            `json:"key"`
	OldRaw string            `json:"old_raw"`
	NewRaw string            `json:"new_raw"`
	Old    *codec.TypedValue `json:"-"`
	New    codec.TypedValue  `json:"-"`
	Added  bool              `json:"added"`
}

// ChangeSet is an ordered, deduplicated list of changes. An empty
// ChangeSet commits as a no-op.
type ChangeSet struct {
	Changes []Change `json:"changes"`
}

// Len returns the number of changed keys.
func (cs ChangeSet) Len() int { return len(cs.Changes) }

// Empty reports whether the set contains no changes.
func (cs ChangeSet) Empty() bool { return len(cs.Changes) == 0 }

// RawValues returns key → encoded new value for applying to a document.
func (cs ChangeSet) RawValues() map[string]string {
	out := make(map[string]string, len(cs.Changes))
	for _, c := range cs.Changes {
		out[c.Key] = c.NewRaw
	}
	return out
}

// Diff compares proposed typed values against the baseline document.
// A key is included only when its encoded value differs from the
// baseline's raw text, so an edit that re-encodes to the same bytes
// never shows up as modified. Existing keys keep baseline line order;
// keys new to the document follow, sorted.
func Diff(baseline *profile.Document, proposed map[string]codec.TypedValue) ChangeSet {
	var cs ChangeSet

	for _, key := range baseline.Keys() {
		v, ok := proposed[key]
		if !ok {
			continue
		}
		oldRaw, _ := baseline.Get(key)
		newRaw := codec.Encode(v)
		if newRaw == oldRaw {
			continue
		}
		cs.Changes = append(cs.Changes, Change{
			Key:    key,
			OldRaw: oldRaw,
			NewRaw: newRaw,
			Old:    decodeBaseline(key, oldRaw),
			New:    v,
		})
	}

	var added []string
	for key := range proposed {
		if !baseline.Has(key) {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	for _, key := range added {
		v := proposed[key]
		cs.Changes = append(cs.Changes, Change{
			Key:    key,
			NewRaw: codec.Encode(v),
			New:    v,
			Added:  true,
		})
	}

	return cs
}

// FromEdits validates raw edits and diffs the accepted ones against
// the baseline. This is the single entry point shared by manual edits
// and preset application; the report carries every rejection and clamp.
func FromEdits(baseline *profile.Document, edits map[string]string) (ChangeSet, validate.Report) {
	values, report := validate.All(edits)
	return Diff(baseline, values), report
}

// decodeBaseline decodes a baseline value against the catalog for
// display purposes. Undecodable or undocumented baselines yield nil.
func decodeBaseline(key, raw string) *codec.TypedValue {
	d, ok := schema.Lookup(key)
	if !ok {
		v := codec.String(raw)
		return &v
	}
	v, err := codec.Decode(raw, d.Kind, d.MemberValues()...)
	if err != nil {
		return nil
	}
	return &v
}
