package cardbox

import (
	"errors"
	"testing"
)

func TestValidateMemberPath(t *testing.T) {
	valid := []string{
		"metadata.yaml",
		"structure.yaml",
		"content/comp1.yaml",
		"content/nested/deep.yaml",
	}
	for _, p := range valid {
		if err := ValidateMemberPath(p); err != nil {
			t.Errorf("%q: unexpected error: %v", p, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"/etc/passwd",
		"content\\comp1.yaml",
		"content/../metadata.yaml",
		"./metadata.yaml",
		"content//comp1.yaml",
		".",
		"..",
		"../outside.yaml",
		"content/comp1.yaml/",
	}
	for _, p := range invalid {
		err := ValidateMemberPath(p)
		if err == nil {
			t.Errorf("%q: expected an error", p)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%q: error must wrap ErrValidation, got %v", p, err)
		}
	}
}
