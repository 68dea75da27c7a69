package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "01000000000", NormalizePhone("010-0000-0000"))
	assert.Equal(t, "01012345678", NormalizePhone(" 010 1234 5678 "))
	assert.Equal(t, "0212345678", NormalizePhone("02-1234-5678"))
	assert.Equal(t, "01012345678", NormalizePhone("01012345678"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("01012345678"))
	assert.True(t, IsValidPhone("0212345678"))

	assert.False(t, IsValidPhone("123456789"))
	assert.False(t, IsValidPhone("012345678901"))
	assert.False(t, IsValidPhone("010-1234-56"))
	assert.False(t, IsValidPhone(""))
}

func TestEmptyToNil(t *testing.T) {
	assert.Nil(t, EmptyToNil(""))

	got := EmptyToNil("Seoul")
	assert.NotNil(t, got)
	assert.Equal(t, "Seoul", *got)
}
