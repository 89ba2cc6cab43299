package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"yusuf.khan@example.org", "Yusuf Khan"},
		{"imam@example.org", "Imam"},
		{"abu_bakr-siddiq@example.org", "Abu Bakr Siddiq"},
		{"fatima+masjid@example.org", "Fatima Masjid"},
		{"@example.org", "Community Member"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveNameFromEmail(tt.email))
		})
	}
}
