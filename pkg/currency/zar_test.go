package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatZAR(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{65, "R 65,00"},
		{220.5, "R 220,50"},
		{1010, "R 1\u00a0010,00"},
		{0, "R 0,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatZAR(tt.value), "value %v", tt.value)
	}
}
