// Package utils provides utility functions for the application.
package utils

import "strings"

// NormalizePhone strips dashes and spaces from a phone number so that both
// the dashed frontend form (010-0000-0000) and the bare digit form collapse
// to the canonical stored representation.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer("-", "", " ", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// IsValidPhone reports whether the normalized phone number is 10-11 digits.
func IsValidPhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 11 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
