package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func submissionCount(kind, outcome string) float64 {
	return testutil.ToFloat64(submissionsTotal.With(prometheus.Labels{"kind": kind, "outcome": outcome}))
}

func TestRecordSubmission(t *testing.T) {
	t.Run("GroupedRouteTemplateWithTrailingSlash", func(t *testing.T) {
		// Fiber renders grouped roots as "/education-inquiries/"
		before := submissionCount("education_inquiry", "accepted")
		recordSubmission("/education-inquiries/", 200)
		assert.Equal(t, before+1, submissionCount("education_inquiry", "accepted"))

		before = submissionCount("partner_application", "rejected")
		recordSubmission("/partner-applications/", 400)
		assert.Equal(t, before+1, submissionCount("partner_application", "rejected"))
	})

	t.Run("PlainRouteTemplate", func(t *testing.T) {
		before := submissionCount("signup", "accepted")
		recordSubmission("/auth/signup", 200)
		assert.Equal(t, before+1, submissionCount("signup", "accepted"))
	})

	t.Run("RejectedOutcome", func(t *testing.T) {
		before := submissionCount("signup", "rejected")
		recordSubmission("/auth/signup", 400)
		recordSubmission("/auth/signup", 500)
		assert.Equal(t, before+2, submissionCount("signup", "rejected"))
	})

	t.Run("UnrelatedRoutesIgnored", func(t *testing.T) {
		before := submissionCount("signup", "accepted") +
			submissionCount("education_inquiry", "accepted") +
			submissionCount("partner_application", "accepted")

		recordSubmission("/auth/logout", 200)
		recordSubmission("/", 200)

		after := submissionCount("signup", "accepted") +
			submissionCount("education_inquiry", "accepted") +
			submissionCount("partner_application", "accepted")
		assert.Equal(t, before, after)
	})
}
