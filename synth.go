package cardbox

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// synthesizeFiles re-derives the container file set for an in-memory
// document so DecodeDocument can reuse the byte-path pipeline unchanged.
// The emitted text stays inside the subset grammar ParseText accepts; in
// particular strings are emitted on one line (newlines become spaces, the
// subset has no block scalars).
func synthesizeFiles(doc *Document) map[string][]byte {
	files := make(map[string][]byte, len(doc.Configs)+2)

	var b strings.Builder
	writeScalarLine(&b, 0, "card_id", doc.Metadata.ID)
	writeScalarLine(&b, 0, "name", doc.Metadata.Name)
	version := doc.Metadata.FormatVersion
	if version == "" {
		version = FormatVersionV1
	}
	writeScalarLine(&b, 0, "format_version", version)
	if !doc.Metadata.CreatedAt.IsZero() {
		writeScalarLine(&b, 0, "created_at", doc.Metadata.CreatedAt.UTC().Format(time.RFC3339))
	}
	if !doc.Metadata.ModifiedAt.IsZero() {
		writeScalarLine(&b, 0, "modified_at", doc.Metadata.ModifiedAt.UTC().Format(time.RFC3339))
	}
	if doc.Metadata.ThemeID != "" {
		writeScalarLine(&b, 0, "theme_id", doc.Metadata.ThemeID)
	}
	if doc.Metadata.Description != "" {
		writeScalarLine(&b, 0, "description", doc.Metadata.Description)
	}
	if len(doc.Metadata.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, t := range doc.Metadata.Tags {
			b.WriteString("  - " + quoteScalar(t) + "\n")
		}
	}
	files[MetadataPath] = []byte(b.String())

	b.Reset()
	b.WriteString("structure:\n")
	for _, ref := range doc.Components {
		b.WriteString("  - id: " + quoteScalar(ref.ID) + "\n")
		b.WriteString("    type: " + quoteScalar(ref.Type) + "\n")
	}
	files[StructurePath] = []byte(b.String())

	for id, cc := range doc.Configs {
		var cb strings.Builder
		writeScalarLine(&cb, 0, "type", cc.Type)
		if cc.Name != "" {
			writeScalarLine(&cb, 0, "name", cc.Name)
		}
		if len(cc.Config) > 0 {
			cb.WriteString("data:\n")
			writeMapping(&cb, 1, cc.Config)
		}
		files[ContentDir+id+".yaml"] = []byte(cb.String())
	}
	return files
}

func writeScalarLine(b *strings.Builder, level int, key, value string) {
	b.WriteString(strings.Repeat("  ", level) + quoteKey(key) + ": " + quoteScalar(value) + "\n")
}

// writeMapping emits keys sorted so synthesis is deterministic; mapping
// order carries no meaning in configuration payloads.
func writeMapping(b *strings.Builder, level int, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pad := strings.Repeat("  ", level)
	for _, k := range keys {
		switch t := m[k].(type) {
		case map[string]any:
			if len(t) == 0 {
				b.WriteString(pad + quoteKey(k) + ": {}\n")
				continue
			}
			b.WriteString(pad + quoteKey(k) + ":\n")
			writeMapping(b, level+1, t)
		case []any:
			if len(t) == 0 {
				b.WriteString(pad + quoteKey(k) + ": []\n")
				continue
			}
			b.WriteString(pad + quoteKey(k) + ":\n")
			for _, it := range t {
				writeSeqItem(b, level+1, it)
			}
		default:
			b.WriteString(pad + quoteKey(k) + ": " + formatScalar(m[k]) + "\n")
		}
	}
}

func writeSeqItem(b *strings.Builder, level int, v any) {
	pad := strings.Repeat("  ", level)
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			b.WriteString(pad + "- {}\n")
			return
		}
		b.WriteString(pad + "-\n")
		writeMapping(b, level+1, t)
	case []any:
		if len(t) == 0 {
			b.WriteString(pad + "- []\n")
			return
		}
		b.WriteString(pad + "-\n")
		for _, it := range t {
			writeSeqItem(b, level+1, it)
		}
	default:
		b.WriteString(pad + "- " + formatScalar(v) + "\n")
	}
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case string:
		return quoteScalar(t)
	default:
		return quoteScalar(fmt.Sprint(v))
	}
}

// quoteScalar renders s so that parsing it back yields the same string.
func quoteScalar(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return `""`
	}
	if !needsQuoting(s) {
		return s
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	// The subset has no escape sequences; degrade inner double quotes.
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}

func needsQuoting(s string) bool {
	switch s {
	case "null", "~", "true", "false", "|", ">":
		return true
	}
	if numberPattern.MatchString(s) {
		return true
	}
	if strings.ContainsAny(s, `:#{}[],"'`) {
		return true
	}
	if s[0] == ' ' || s[0] == '-' || s[len(s)-1] == ' ' {
		return true
	}
	return false
}

func quoteKey(k string) string {
	if k == "" || strings.ContainsAny(k, ":#'\" \t") || k[0] == '-' || k[0] == '[' || k[0] == '{' {
		return `"` + strings.ReplaceAll(k, `"`, "'") + `"`
	}
	return k
}
