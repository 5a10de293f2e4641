package validation

import (
	"strings"
	"unicode/utf8"
)

const maxNoteLength = 10000

func ValidateNote(content string) error {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return invalid("note cannot be empty")
	}

	if utf8.RuneCountInString(trimmed) > maxNoteLength {
		return invalid("note is too long (max 10000 characters)")
	}

	return nil
}
