package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/msgboard/msgboard/shared/errors"
)

var errMarkup = &errors.Validation{Message: "Text must not contain markup"}

// TextSanitizer guards thread and reply text against stored markup.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer returns a sanitizer; a disabled one accepts any text.
func NewTextSanitizer(enabled bool) *TextSanitizer {
	if !enabled {
		return &TextSanitizer{}
	}
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns text unchanged or a Validation error when the strict
// policy would remove part of it. Text is never shortened silently.
func (s *TextSanitizer) Sanitize(text string) (string, error) {
	if s.policy == nil || !strings.ContainsRune(text, '<') {
		return text, nil
	}
	// the policy escapes entities on output, decode before comparing
	if html.UnescapeString(s.policy.Sanitize(text)) != html.UnescapeString(text) {
		return "", errMarkup
	}
	return text, nil
}
