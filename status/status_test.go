// status_test.go
package status

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusNoContent, true},
		{http.StatusMultipleChoices, false},
		{http.StatusUnauthorized, false},
		{http.StatusInternalServerError, false},
		{0, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSuccess(tt.code))
		})
	}
}

// TestIsAuthFailure verifies that only 401 is treated as a recoverable authentication failure.
func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure(http.StatusUnauthorized))
	assert.False(t, IsAuthFailure(http.StatusForbidden))
	assert.False(t, IsAuthFailure(http.StatusOK))
}

func TestRedirectClassification(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		redirect  bool
		permanent bool
	}{
		{"301", http.StatusMovedPermanently, true, true},
		{"302", http.StatusFound, true, false},
		{"303", http.StatusSeeOther, true, false},
		{"307", http.StatusTemporaryRedirect, true, false},
		{"308", http.StatusPermanentRedirect, true, true},
		{"304 is not followed", http.StatusNotModified, false, false},
		{"200", http.StatusOK, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.redirect, IsRedirectStatusCode(tt.code))
			assert.Equal(t, tt.permanent, IsPermanentRedirect(tt.code))
		})
	}
}

func TestTranslateStatusCode(t *testing.T) {
	assert.Equal(t, "Resource not found. Verify the URL path is correct.", TranslateStatusCode(http.StatusNotFound))
	assert.Contains(t, TranslateStatusCode(0), "network")
	assert.Equal(t, "Unknown status code: 599", TranslateStatusCode(599))
}
