package cardbox

import (
	"fmt"
	"strings"
	"time"
)

// DecodeBytes decodes a document from raw container bytes.
//
// The decoding process:
//  1. Locates the ZIP central directory and extracts every member
//  2. Parses metadata.yaml and structure.yaml (both required)
//  3. Loads and normalizes content/<id>.yaml for every listed component
//
// A missing or unreadable required file fails the decode with
// ErrMissingMetadata or ErrMissingStructure; warnings accumulated before
// the failure are still returned. Per-component problems become warnings
// and omit only the affected component, unless [WithStrict] is set.
func DecodeBytes(data []byte, opts ...DecodeOption) (*Document, []Warning, error) {
	cfg := newDecodeConfig(opts)
	files, warns, err := extractFiles(data, cfg.limits)
	if err != nil {
		return nil, nil, err
	}
	return assemble(files, warns, cfg)
}

// DecodeFileMap assembles a document from an already-extracted path→bytes
// mapping, skipping container extraction.
func DecodeFileMap(files map[string][]byte, opts ...DecodeOption) (*Document, []Warning, error) {
	return assemble(files, nil, newDecodeConfig(opts))
}

// DecodeDocument re-runs an in-memory document through the assembly
// pipeline. The equivalent metadata/structure/content files are re-derived
// first, so validation and normalization behave exactly as they do for the
// byte path.
func DecodeDocument(doc *Document, opts ...DecodeOption) (*Document, []Warning, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("%w: document is nil", ErrValidation)
	}
	return assemble(synthesizeFiles(doc), nil, newDecodeConfig(opts))
}

func newDecodeConfig(opts []DecodeOption) decodeConfig {
	cfg := decodeConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

func assemble(files map[string][]byte, warns []Warning, cfg decodeConfig) (*Document, []Warning, error) {
	now := time.Now().UTC()

	rawMeta, ok := files[MetadataPath]
	if !ok {
		return nil, warns, fmt.Errorf("%w: file not found", ErrMissingMetadata)
	}
	meta, err := parseMetadata(rawMeta, now)
	if err != nil {
		return nil, warns, fmt.Errorf("%w: %v", ErrMissingMetadata, err)
	}

	rawStructure, ok := files[StructurePath]
	if !ok {
		return nil, warns, fmt.Errorf("%w: file not found", ErrMissingStructure)
	}
	refs, err := parseStructure(rawStructure)
	if err != nil {
		return nil, warns, fmt.Errorf("%w: %v", ErrMissingStructure, err)
	}
	if len(refs) > cfg.limits.MaxComponents {
		return nil, warns, fmt.Errorf("%w: %d components (max %d)", ErrLimitExceeded, len(refs), cfg.limits.MaxComponents)
	}

	configs := make(map[string]ComponentConfig, len(refs))
	for _, ref := range refs {
		path := ContentDir + ref.ID + ".yaml"
		cc, reason := loadComponent(files, ref, path)
		if reason != "" {
			if cfg.strict {
				return nil, warns, fmt.Errorf("%w: component %q: %s", ErrComponentLoad, ref.ID, reason)
			}
			warns = append(warns, Warning{ComponentID: ref.ID, Path: path, Reason: reason})
			continue
		}
		configs[ref.ID] = cc
	}

	doc := &Document{Metadata: meta, Components: refs, Configs: configs}
	if cfg.keepRawFiles {
		doc.RawFiles = files
	}
	return doc, warns, nil
}

// parseMetadata decodes metadata.yaml. "card_id" is the canonical id
// spelling; plain "id" is accepted for older containers. Absent optional
// fields get defaults; absent or unparseable timestamps default to now.
func parseMetadata(raw []byte, now time.Time) (Metadata, error) {
	root, err := ParseText(string(raw))
	if err != nil {
		return Metadata{}, err
	}
	id := strings.TrimSpace(root.StrOr("card_id", root.StrOr("id", "")))
	if id == "" {
		return Metadata{}, fmt.Errorf("card id is required")
	}
	name := strings.TrimSpace(root.StrOr("name", ""))
	if name == "" {
		return Metadata{}, fmt.Errorf("name is required")
	}
	m := Metadata{
		FormatVersion: root.StrOr("format_version", FormatVersionV1),
		ID:            id,
		Name:          name,
		CreatedAt:     parseTimeOr(root.StrOr("created_at", ""), now),
		ModifiedAt:    parseTimeOr(root.StrOr("modified_at", ""), now),
		ThemeID:       root.StrOr("theme_id", ""),
		Description:   root.StrOr("description", ""),
	}
	if tags := root.Get("tags"); tags != nil && tags.Kind == KindSequence {
		for _, it := range tags.Items {
			if s, ok := scalarText(it); ok && s != "" {
				m.Tags = append(m.Tags, s)
			}
		}
	}
	return m, nil
}

// parseStructure decodes structure.yaml into the ordered component list.
// List entries that are not a mapping with a string id are ignored.
func parseStructure(raw []byte) ([]ComponentRef, error) {
	root, err := ParseText(string(raw))
	if err != nil {
		return nil, err
	}
	list := root.Get("structure")
	if list == nil || list.Kind != KindSequence {
		return nil, nil
	}
	var refs []ComponentRef
	for _, it := range list.Items {
		if it.Kind != KindMapping {
			continue
		}
		id, ok := scalarText(it.Get("id"))
		if !ok || strings.TrimSpace(id) == "" {
			continue
		}
		typ, _ := scalarText(it.Get("type"))
		refs = append(refs, ComponentRef{ID: id, Type: typ})
	}
	return refs, nil
}

// loadComponent parses one content file and normalizes the two authoring
// shapes into the canonical config mapping. A non-empty reason means the
// component failed to load.
func loadComponent(files map[string][]byte, ref ComponentRef, path string) (ComponentConfig, string) {
	raw, ok := files[path]
	if !ok {
		return ComponentConfig{}, "content file not found"
	}
	root, err := ParseText(string(raw))
	if err != nil {
		return ComponentConfig{}, err.Error()
	}
	typ, _ := scalarText(root.Get("type"))
	if strings.TrimSpace(typ) == "" {
		return ComponentConfig{}, "missing component type"
	}
	name, _ := scalarText(root.Get("name"))
	cc := ComponentConfig{ID: ref.ID, Type: typ, Name: name}

	if data := root.Get("data"); data != nil && data.Kind == KindMapping {
		cc.Config = data.Interface().(map[string]any)
		return cc, ""
	}
	// Flattened authoring shape: everything except type and name is the
	// configuration payload.
	config := make(map[string]any, len(root.Pairs))
	for _, pr := range root.Pairs {
		if pr.Key == "type" || pr.Key == "name" {
			continue
		}
		config[pr.Key] = pr.Value.Interface()
	}
	cc.Config = config
	return cc, ""
}

func parseTimeOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
