package profile

import (
	"sort"
	"time"
)

// line is one physical line of the profile file. Raw holds the exact
// original content without its terminator; eol holds the terminator
// ("" for a final line with no trailing newline). Key is empty for
// blank lines, comments, and anything else that is not a key=value
// entry; such lines are carried verbatim through serialization.
type line struct {
	raw   string
	eol   string
	key   string
	value string
}

// Document is an ordered, line-preserving view of a profile file.
// An unmodified document serializes back to the exact input bytes.
type Document struct {
	Path     string
	ReadAt   time.Time
	Checksum string

	lines []line
	byKey map[string]int // key → index of its first entry line
	eol   string         // terminator used for appended keys
}

// Get returns the raw textual value of key and whether it is present.
func (d *Document) Get(key string) (string, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return "", false
	}
	return d.lines[i].value, true
}

// Has reports whether key is present in the document.
func (d *Document) Has(key string) bool {
	_, ok := d.byKey[key]
	return ok
}

// Set rewrites the value of an existing key in place, or appends a new
// key=value line when the key is not present. Only the targeted line
// changes; everything else keeps its original bytes.
func (d *Document) Set(key, raw string) {
	if i, ok := d.byKey[key]; ok {
		d.lines[i].value = raw
		d.lines[i].raw = key + "=" + raw
		return
	}
	// Appending after a file that had no final newline needs one first.
	if n := len(d.lines); n > 0 && d.lines[n-1].eol == "" {
		d.lines[n-1].eol = d.eol
	}
	d.lines = append(d.lines, line{raw: key + "=" + raw, eol: d.eol, key: key, value: raw})
	d.byKey[key] = len(d.lines) - 1
}

// Apply sets every key of changes. Keys new to the document are
// appended in lexical order so serialization is deterministic.
func (d *Document) Apply(changes map[string]string) {
	var added []string
	for k := range changes {
		if !d.Has(k) {
			added = append(added, k)
			continue
		}
		d.Set(k, changes[k])
	}
	sort.Strings(added)
	for _, k := range added {
		d.Set(k, changes[k])
	}
}

// Keys returns every entry key in line order.
func (d *Document) Keys() []string {
	out := make([]string, 0, len(d.byKey))
	for i, ln := range d.lines {
		if ln.key != "" && d.byKey[ln.key] == i {
			out = append(out, ln.key)
		}
	}
	return out
}

// Values returns a copy of all key → raw value pairs.
func (d *Document) Values() map[string]string {
	out := make(map[string]string, len(d.byKey))
	for k, i := range d.byKey {
		out[k] = d.lines[i].value
	}
	return out
}

// Len returns the number of distinct keys.
func (d *Document) Len() int { return len(d.byKey) }

// Clone returns an independent copy. Readers work on snapshots; only
// the commit path mutates a document.
func (d *Document) Clone() *Document {
	c := &Document{
		Path:     d.Path,
		ReadAt:   d.ReadAt,
		Checksum: d.Checksum,
		lines:    make([]line, len(d.lines)),
		byKey:    make(map[string]int, len(d.byKey)),
		eol:      d.eol,
	}
	copy(c.lines, d.lines)
	for k, v := range d.byKey {
		c.byKey[k] = v
	}
	return c
}

// Serialize renders the document back to bytes. With no edits applied
// the output is byte-identical to the parsed input.
func (d *Document) Serialize() []byte {
	var n int
	for _, ln := range d.lines {
		n += len(ln.raw) + len(ln.eol)
	}
	out := make([]byte, 0, n)
	for _, ln := range d.lines {
		out = append(out, ln.raw...)
		out = append(out, ln.eol...)
	}
	return out
}
