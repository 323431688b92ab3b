package cardbox

import "errors"

var (
	ErrMalformedEOCD    = errors.New("cardbox: malformed end-of-central-directory record")
	ErrTextFormat       = errors.New("cardbox: malformed configuration text")
	ErrMissingMetadata  = errors.New("cardbox: missing or unreadable metadata.yaml")
	ErrMissingStructure = errors.New("cardbox: missing or unreadable structure.yaml")
	ErrComponentLoad    = errors.New("cardbox: component load failed")
	ErrLimitExceeded    = errors.New("cardbox: limit exceeded")
	ErrValidation       = errors.New("cardbox: validation failed")
)
