package certificate_test

import (
	"testing"
	"time"

	"go-shien/internal/certificate"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	today := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		validUntil time.Time
		want       string
	}{
		{"ended yesterday", today.AddDate(0, 0, -1), certificate.StatusExpired},
		{"ended long ago", today.AddDate(-1, 0, 0), certificate.StatusExpired},
		{"ends today", today, certificate.StatusExpiringSoon},
		{"ends in 29 days", today.AddDate(0, 0, 29), certificate.StatusExpiringSoon},
		{"ends in 30 days", today.AddDate(0, 0, 30), certificate.StatusWithin90Days},
		{"ends in 90 days", today.AddDate(0, 0, 90), certificate.StatusWithin90Days},
		{"ends in 91 days", today.AddDate(0, 0, 91), certificate.StatusValid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, certificate.Classify(today, tc.validUntil))
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, 9, 1, 23, 45, 0, 0, time.UTC)
	validUntil := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	// same calendar day is not expired even late in the evening
	assert.Equal(t, certificate.StatusExpiringSoon, certificate.Classify(today, validUntil))
}
