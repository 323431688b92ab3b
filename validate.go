package cardbox

import (
	"fmt"
	"path"
	"strings"
)

// ValidateMemberPath reports whether p is a safe, normalized archive member
// path. Extraction itself accepts any member name; callers writing members
// out to a filesystem should reject anything this returns an error for.
func ValidateMemberPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: path is empty", ErrValidation)
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: path must not be absolute", ErrValidation)
	}
	if strings.Contains(p, `\`) {
		return fmt.Errorf("%w: path must use forward slashes", ErrValidation)
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("%w: path must be normalized: %q", ErrValidation, clean)
	}
	if clean == "." {
		return fmt.Errorf("%w: path must not be the current directory", ErrValidation)
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: path must not escape the container", ErrValidation)
	}
	return nil
}
