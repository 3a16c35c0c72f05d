package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxReferenceLength = 100

// NewReference mints a correlation reference for a single orchestration run.
func NewReference() string {
	return uuid.NewString()
}

// ResolveReference honours a caller-supplied reference and only mints one when
// none was given. The returned value is fixed for the lifetime of the run.
func ResolveReference(supplied string) (string, error) {
	ref := strings.TrimSpace(supplied)
	if ref == "" {
		return NewReference(), nil
	}

	if utf8.RuneCountInString(ref) > MaxReferenceLength {
		return "", NewInvalidReferenceError("must be at most 100 characters")
	}

	for _, r := range ref {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", NewInvalidReferenceError("must not contain whitespace or control characters")
		}
	}

	return ref, nil
}
