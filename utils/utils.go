// Package utils provides utility functions for the application.
package utils

func ToPtr[T any](v T) *T {
	return &v
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

// EmptyToNil converts a blank string to a nil pointer so optional text
// fields persist as NULL instead of empty strings.
func EmptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
