package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserProbe(t *testing.T) {
	tests := []struct {
		name, ua, target string
	}{
		{"chrome", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "es2022"},
		{"old chrome", "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.138 Safari/537.36", "es2020"},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:78.0) Gecko/20100101 Firefox/78.0", "es2020"},
		{"safari", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.2 Safari/605.1.15", "es2021"},
		{"ios safari", "Mozilla/5.0 (iPhone; CPU iPhone OS 12_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/12.1.2 Mobile/15E148 Safari/604.1", "es2018"},
		{"ancient", "Mozilla/5.0 Chrome/40.0 Safari/537.36", "es2015"},
		{"curl", "curl/8.1.2", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.target, Browser{UserAgent: tt.ua}.Probe().Target)
		})
	}
}

func TestNoneProbe(t *testing.T) {
	assert.Equal(t, "", None{}.Probe().Target)
}
