package cardbox

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// archiveEntry is a central-directory record reduced to the fields the
// extractor needs. It never outlives the scan.
type archiveEntry struct {
	path             string
	method           uint16
	compressedSize   uint32
	uncompressedSize uint32
	localOffset      uint32
}

// ExtractContainer reads every member of a ZIP-structured container and
// returns the path→content mapping.
//
// Extraction is best-effort: only a missing or unreadable
// end-of-central-directory record fails the whole call (ErrMalformedEOCD).
// Anything wrong with an individual entry — an unsupported compression
// method, offsets pointing outside the buffer, a corrupt DEFLATE stream —
// degrades to a skipped entry or empty content for that path and is
// reported on the returned warning list.
func ExtractContainer(data []byte, opts ...DecodeOption) (map[string][]byte, []Warning, error) {
	cfg := newDecodeConfig(opts)
	return extractFiles(data, cfg.limits)
}

func extractFiles(data []byte, limits Limits) (map[string][]byte, []Warning, error) {
	eocd, err := findEOCD(data)
	if err != nil {
		return nil, nil, err
	}

	entryCount := int(binary.LittleEndian.Uint16(data[eocd+10 : eocd+12]))
	dirOffset := int64(binary.LittleEndian.Uint32(data[eocd+16 : eocd+20]))
	if entryCount > limits.MaxEntries {
		return nil, nil, fmt.Errorf("%w: %d central-directory entries (max %d)", ErrLimitExceeded, entryCount, limits.MaxEntries)
	}

	files := make(map[string][]byte, entryCount)
	var warns []Warning
	cursor := dirOffset
	for i := 0; i < entryCount; i++ {
		if cursor < 0 || cursor+centralDirFixedSize > int64(len(data)) {
			break
		}
		rec := data[cursor:]
		if binary.LittleEndian.Uint32(rec[0:4]) != sigCentralDir {
			// Tolerant partial read: a bad signature ends the walk
			// without failing entries already collected.
			break
		}
		nameLen := int64(binary.LittleEndian.Uint16(rec[28:30]))
		extraLen := int64(binary.LittleEndian.Uint16(rec[30:32]))
		commentLen := int64(binary.LittleEndian.Uint16(rec[32:34]))
		if cursor+centralDirFixedSize+nameLen > int64(len(data)) {
			break
		}
		entry := archiveEntry{
			path:             string(rec[centralDirFixedSize : centralDirFixedSize+nameLen]),
			method:           binary.LittleEndian.Uint16(rec[10:12]),
			compressedSize:   binary.LittleEndian.Uint32(rec[20:24]),
			uncompressedSize: binary.LittleEndian.Uint32(rec[24:28]),
			localOffset:      binary.LittleEndian.Uint32(rec[42:46]),
		}
		cursor += centralDirFixedSize + nameLen + extraLen + commentLen

		if strings.HasSuffix(entry.path, "/") {
			// Directory marker, carries no data.
			continue
		}
		content, warn := readEntry(data, entry, limits)
		if warn != nil {
			warns = append(warns, *warn)
		}
		if content != nil {
			files[entry.path] = content
		}
	}
	return files, warns, nil
}

// findEOCD scans backward from len(data)-22 for the end-of-central-directory
// signature, allowing for a trailing archive comment of up to 64 KiB.
func findEOCD(data []byte) (int, error) {
	if len(data) < eocdFixedSize {
		return 0, fmt.Errorf("%w: buffer shorter than %d bytes", ErrMalformedEOCD, eocdFixedSize)
	}
	floor := len(data) - eocdFixedSize - maxCommentScan
	if floor < 0 {
		floor = 0
	}
	for i := len(data) - eocdFixedSize; i >= floor; i-- {
		if binary.LittleEndian.Uint32(data[i:i+4]) == sigEOCD {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: signature not found", ErrMalformedEOCD)
}

// readEntry decodes one member. A nil content with a warning means the entry
// was skipped; empty content with a warning means the entry existed but its
// data was unreadable (the documented degradation for corrupt members).
func readEntry(data []byte, e archiveEntry, limits Limits) ([]byte, *Warning) {
	switch e.method {
	case methodStored, methodDeflate:
	default:
		return nil, &Warning{Path: e.path, Reason: fmt.Sprintf("unsupported compression method %d", e.method)}
	}

	lo := int64(e.localOffset)
	if lo+localHeaderFixedSize > int64(len(data)) {
		return []byte{}, &Warning{Path: e.path, Reason: "local header offset out of range"}
	}
	if binary.LittleEndian.Uint32(data[lo:lo+4]) != sigLocalHeader {
		return []byte{}, &Warning{Path: e.path, Reason: "local header signature mismatch"}
	}
	// The local header's name/extra lengths may differ from the central
	// record, so the true data offset has to come from the local header.
	nameLen := int64(binary.LittleEndian.Uint16(data[lo+26 : lo+28]))
	extraLen := int64(binary.LittleEndian.Uint16(data[lo+28 : lo+30]))
	start := lo + localHeaderFixedSize + nameLen + extraLen

	size := int64(e.compressedSize)
	if e.method == methodStored {
		size = int64(e.uncompressedSize)
	}
	end := start + size
	if start > int64(len(data)) || end > int64(len(data)) {
		return []byte{}, &Warning{Path: e.path, Reason: "entry data out of range"}
	}
	if uint64(e.uncompressedSize) > limits.MaxEntryUncompressed {
		return []byte{}, &Warning{Path: e.path, Reason: fmt.Sprintf("entry exceeds uncompressed size limit (%d bytes)", e.uncompressedSize)}
	}
	raw := data[start:end]

	if e.method == methodStored {
		return bytes.Clone(raw), nil
	}
	out, err := inflateRaw(raw, uint64(e.uncompressedSize))
	if err != nil {
		// Compatibility behavior: a corrupt stream yields empty content
		// for the path rather than aborting the batch.
		return []byte{}, &Warning{Path: e.path, Reason: "deflate decompression failed: " + err.Error()}
	}
	return out, nil
}

// inflateRaw decompresses a raw DEFLATE stream (no zlib wrapper), rejecting
// output that does not match the size recorded in the central directory.
func inflateRaw(in []byte, expected uint64) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(in))
	defer fr.Close()
	out, err := io.ReadAll(io.LimitReader(fr, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != expected {
		return nil, fmt.Errorf("decompressed length %d != expected %d", len(out), expected)
	}
	return out, nil
}
