package mcpserver

import (
	"fmt"
	"strings"

	"github.com/tstetson/fieldtuner/internal/codec"
	"github.com/tstetson/fieldtuner/internal/schema"
)

// CatalogContract renders the settings catalog as Markdown for LLM
// consumers: one section per category, one line per setting with its
// kind, domain and default.
func CatalogContract() string {
	var b strings.Builder
	b.WriteString("# FieldTuner Settings Catalog\n\n")
	b.WriteString("Profile entries are `key=value` lines. Edits MUST use the raw value\n")
	b.WriteString("encoding shown here: booleans are `0`/`1`, enums are one of the listed\n")
	b.WriteString("values, floats use decimal notation. Values outside a soft range are\n")
	b.WriteString("clamped with a warning; values outside a hard range reject the whole\n")
	b.WriteString("batch. Keys not listed here pass through untouched.\n")

	for _, category := range schema.Categories() {
		fmt.Fprintf(&b, "\n## %s\n\n", category)
		for _, d := range schema.ByCategory(category) {
			b.WriteString(describeSetting(d))
		}
	}
	return b.String()
}

func describeSetting(d *schema.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- `%s` (%s", d.Key, d.Kind)
	switch {
	case d.Kind == codec.KindEnum:
		fmt.Fprintf(&b, ": %s", strings.Join(d.MemberValues(), ", "))
	case d.HasRange():
		bound := "soft"
		if d.HardRange {
			bound = "hard"
		}
		fmt.Fprintf(&b, ", %s range %g..%g", bound, d.Min, d.Max)
	}
	b.WriteString(")")
	if d.Label != "" {
		fmt.Fprintf(&b, " %s", d.Label)
	}
	if d.Default != "" {
		fmt.Fprintf(&b, ", default `%s`", d.Default)
	}
	b.WriteString("\n")
	return b.String()
}
