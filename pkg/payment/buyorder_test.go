package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		buyOrder string
		want     int64
		ok       bool
	}{
		{"O42", 42, true},
		{"O1", 1, true},
		{"O1000000000", 1000000000, true},
		{"O42-extra", 42, true},
		{"O1500000001", 0, false},
		{"O99999999999999999999", 0, false},
		{"ABC123", 0, false},
		{"42", 0, false},
		{"O", 0, false},
		{"O0", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractOrderID(tt.buyOrder)
		assert.Equal(t, tt.ok, ok, "buyOrder %q", tt.buyOrder)
		assert.Equal(t, tt.want, got, "buyOrder %q", tt.buyOrder)
	}
}
