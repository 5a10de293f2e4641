package validation

import (
	"net/url"
	"strings"
	"time"
)

// ValidateTitle validates a book title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return invalid("title is required")
	}

	if len(trimmed) > 300 {
		return invalid("title is too long (max 300 characters)")
	}

	return nil
}

func ValidateAuthor(author string) error {
	if len(strings.TrimSpace(author)) > 200 {
		return invalid("author is too long (max 200 characters)")
	}
	return nil
}

func ValidateTotalPages(totalPages int) error {
	if totalPages <= 0 {
		return invalid("total pages must be a positive number")
	}
	return nil
}

// ValidateCoverURL accepts an empty value or an absolute http(s) URL
func ValidateCoverURL(coverURL string) error {
	if coverURL == "" {
		return nil
	}

	u, err := url.Parse(coverURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid("cover URL must be an http or https address")
	}

	return nil
}

// ValidateStartDate accepts an empty value or a YYYY-MM-DD date
func ValidateStartDate(startDate string) error {
	if startDate == "" {
		return nil
	}

	_, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return invalid("start date must use the YYYY-MM-DD format")
	}

	return nil
}
