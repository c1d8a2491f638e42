package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func checkLength[F ~string](errs FieldErrors[F], field F, label string, value string, min, max int) {
	n := runeLen(value)
	if min > 0 && n == 0 {
		errs.Add(field, fmt.Sprintf("%s is required.", label))
		return
	}
	if min > 0 && n < min {
		errs.Add(field, fmt.Sprintf("%s must be at least %d characters.", label, min))
	}
	if max > 0 && n > max {
		errs.Add(field, fmt.Sprintf("%s must be at most %d characters.", label, max))
	}
}

func checkOptionalURL[F ~string](errs FieldErrors[F], field F, label string, value string) {
	if value == "" {
		return
	}
	if !IsHTTPURL(value) {
		errs.Add(field, fmt.Sprintf("%s must be a valid http(s) URL.", label))
	}
}

func checkSortOrder[F ~string](errs FieldErrors[F], field F, value int) {
	if value < 0 {
		errs.Add(field, "Sort order must be zero or greater.")
	}
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
