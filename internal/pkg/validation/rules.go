package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Clock pattern - 24h "HH:MM"
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Calendar date pattern - "YYYY-MM-DD"
	DatePattern = `^\d{4}-\d{2}-\d{2}$`

	// Password min length
	PasswordMinLength = 8

	// Title validation min/max length
	TitleMinLength = 2
	TitleMaxLength = 200
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Clock *regexp.Regexp
	Date  *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Clock: regexp.MustCompile(ClockPattern),
	Date:  regexp.MustCompile(DatePattern),
}
