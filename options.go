package cardbox

type decodeConfig struct {
	limits       Limits
	strict       bool
	keepRawFiles bool
}

type DecodeOption func(*decodeConfig)

// WithStrict promotes the first component-load failure into a whole-decode
// failure. Without it, per-component failures become warnings and the
// affected component is omitted from the result.
func WithStrict(v bool) DecodeOption {
	return func(c *decodeConfig) { c.strict = v }
}

// WithRawFiles attaches the extracted path→bytes mapping to the decoded
// document, for callers that resolve embedded resources themselves.
func WithRawFiles(v bool) DecodeOption {
	return func(c *decodeConfig) { c.keepRawFiles = v }
}

func WithLimits(l Limits) DecodeOption {
	return func(c *decodeConfig) { c.limits = l }
}
