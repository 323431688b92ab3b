package cardbox

import "time"

// FormatVersionV1 is the default document format version filled in when
// metadata.yaml omits one.
const FormatVersionV1 = "1.0"

// Fixed member paths inside a container. The layout is part of the format
// and is not configurable.
const (
	MetadataPath  = "metadata.yaml"
	StructurePath = "structure.yaml"
	ContentDir    = "content/"
)

// ZIP record signatures (little-endian on the wire).
const (
	sigEOCD        uint32 = 0x06054b50
	sigCentralDir  uint32 = 0x02014b50
	sigLocalHeader uint32 = 0x04034b50
)

// ZIP compression methods the decoder understands. Entries using any other
// method are skipped.
const (
	methodStored  uint16 = 0
	methodDeflate uint16 = 8
)

const (
	eocdFixedSize        = 22
	centralDirFixedSize  = 46
	localHeaderFixedSize = 30
	maxCommentScan       = 0xFFFF
)

// Metadata is the decoded content of metadata.yaml.
//
// ID and Name are always non-empty on a successfully assembled document.
// Absent timestamps are filled with the decode time in UTC.
type Metadata struct {
	FormatVersion string
	ID            string
	Name          string
	CreatedAt     time.Time
	ModifiedAt    time.Time
	ThemeID       string
	Tags          []string
	Description   string
}

// ComponentRef is one entry of the structure manifest. The order of refs in
// a document is the order declared in structure.yaml and is significant.
type ComponentRef struct {
	ID   string
	Type string
}

// ComponentConfig is the normalized configuration of a single component.
//
// Config is the canonical configuration mapping regardless of which of the
// two authoring shapes the content file used (an explicit "data" sub-mapping,
// or flattened top-level fields).
type ComponentConfig struct {
	ID     string
	Type   string
	Name   string
	Config map[string]any
}

// Document is the assembled in-memory representation of a card.
//
// Components preserves manifest order. Configs holds one entry per component
// whose content file was successfully loaded; components that failed to load
// in non-strict mode are present in Components but absent from Configs.
// RawFiles is populated only when decoding with [WithRawFiles].
type Document struct {
	Metadata   Metadata
	Components []ComponentRef
	Configs    map[string]ComponentConfig
	RawFiles   map[string][]byte
}

// Warning records a non-fatal problem encountered during extraction or
// assembly. Warnings are reported in encounter order.
type Warning struct {
	// ComponentID is set for assembly warnings scoped to one component,
	// empty for container-level warnings.
	ComponentID string
	// Path is the archive member the warning refers to, when known.
	Path   string
	Reason string
}
