// Package cardbox decodes the CardBox container format: a ZIP-structured
// single-file bundle holding a card document's metadata, its ordered
// component manifest, and one configuration file per component.
//
// # Container Layout
//
// A CardBox container is a standard ZIP archive (stored or raw-DEFLATE
// entries only) with a fixed internal layout:
//   - metadata.yaml — document metadata (id, name, timestamps, theme, tags)
//   - structure.yaml — ordered component references under a "structure" key
//   - content/<component-id>.yaml — one configuration file per component
//
// The embedded configuration language is a deliberately restricted YAML
// subset: indentation-nested mappings and sequences, inline [..] and {..}
// collections, quoted strings, numbers, booleans and nulls. Block scalars,
// anchors, aliases and tags are not part of the format.
//
// # Basic Usage
//
// To decode a container from raw bytes:
//
//	doc, warns, err := cardbox.DecodeBytes(data)
//	if err != nil {
//		// required files missing or the archive is not a container
//	}
//	for _, w := range warns {
//		// per-component problems that did not abort the decode
//	}
//
// An already-extracted path→bytes mapping can be assembled directly with
// [DecodeFileMap], and an in-memory [Document] can be re-validated through
// the same pipeline with [DecodeDocument].
//
// # Partial Decoding
//
// Decoding favors a usable partial document over all-or-nothing failure:
// a malformed or missing component configuration is reported on the warning
// list and the component is omitted, unless [WithStrict] is set, in which
// case the first such failure aborts the decode. Only a missing/unreadable
// metadata.yaml or structure.yaml is always fatal.
//
// # Security Considerations
//
// The decoder enforces configurable [Limits] on archive entry counts and
// per-entry uncompressed sizes to prevent decompression bombs, and never
// panics on truncated or corrupt archives: malformed entries degrade to
// skipped entries or empty content.
package cardbox
