package cardbox

// Limits bounds resource usage while decoding a container. Zero-valued
// fields fall back to the defaults below.
type Limits struct {
	MaxEntries           int    // central-directory entries walked per archive
	MaxEntryUncompressed uint64 // bytes after decompression, per entry
	MaxComponents        int    // entries accepted from the structure manifest
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:           10_000,
		MaxEntryUncompressed: 256 << 20, // 256 MiB
		MaxComponents:        10_000,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxEntryUncompressed == 0 {
		l.MaxEntryUncompressed = d.MaxEntryUncompressed
	}
	if l.MaxComponents == 0 {
		l.MaxComponents = d.MaxComponents
	}
	return l
}
