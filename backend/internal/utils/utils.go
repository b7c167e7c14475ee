package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/errors"
)

// InputValidator checks user input against the configured rune limits.
type InputValidator struct {
	limits config.Limits
}

func NewInputValidator(limits config.Limits) *InputValidator {
	return &InputValidator{limits: limits}
}

func (v *InputValidator) BoardName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &errors.Validation{Message: "Board name is required"}
	}
	if utf8.RuneCountInString(name) > v.limits.BoardName {
		return &errors.Validation{Message: "Board name is too long"}
	}
	return nil
}

func (v *InputValidator) Text(text string) error {
	if len(text) == 0 {
		return &errors.Validation{Message: "Text is too short"}
	}
	if utf8.RuneCountInString(text) > v.limits.Text {
		return &errors.Validation{Message: "Text is too long"}
	}
	return nil
}

func (v *InputValidator) Password(password string) error {
	if len(password) == 0 {
		return &errors.Validation{Message: "Delete password is required"}
	}
	if utf8.RuneCountInString(password) > v.limits.Password {
		return &errors.Validation{Message: "Delete password is too long"}
	}
	return nil
}
