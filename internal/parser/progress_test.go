package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "50", 50},
		{"decimal", "33.5", 33.5},
		{"zero", "0", 0},
		{"full", "100", 100},
		{"percent suffix", "75%", 75},
		{"whitespace", "  40  ", 40},
		{"blank coerces to zero", "", 0},
		{"text coerces to zero", "half done", 0},
		{"negative coerces to zero", "-10", 0},
		{"over range coerces to zero", "150", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseProgress(tt.input))
		})
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "0", FormatProgress(0))
	assert.Equal(t, "50", FormatProgress(50))
	assert.Equal(t, "33.5", FormatProgress(33.5))
}
