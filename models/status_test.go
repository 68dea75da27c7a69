package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInquiryStatus(t *testing.T) {
	cases := map[string]InquiryStatus{
		"PENDING":     StatusPending,
		"pending":     StatusPending,
		"In_Progress": StatusInProgress,
		"completed":   StatusCompleted,
		" CANCELLED ": StatusCancelled,
	}

	for input, want := range cases {
		got, err := ParseInquiryStatus(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	for _, input := range []string{"", "DONE", "IN PROGRESS", "pending2"} {
		_, err := ParseInquiryStatus(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleGeneral, ParseRole(""))
	assert.Equal(t, RoleGeneral, ParseRole("12345"))
	assert.Equal(t, RoleGeneral, ParseRole("principal"))
	assert.Equal(t, RoleTeacher, ParseRole("teacher"))
	assert.Equal(t, RoleStudent, ParseRole("STUDENT"))
	assert.Equal(t, RoleInstructor, ParseRole(" instructor "))
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
}

func TestPartnerApplicationHasCertification(t *testing.T) {
	app := &PartnerApplication{}
	assert.False(t, app.HasCertification())

	app.Class3Cert = true
	assert.True(t, app.HasCertification())

	other := &PartnerApplication{OtherCert: true}
	assert.True(t, other.HasCertification())
}
