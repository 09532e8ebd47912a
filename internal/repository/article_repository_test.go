package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{
			name:     "plain term passes through",
			term:     "hello world",
			expected: "hello world",
		},
		{
			name:     "percent is literal",
			term:     "100%",
			expected: `100\%`,
		},
		{
			name:     "underscore is literal",
			term:     "a_c",
			expected: `a\_c`,
		},
		{
			name:     "backslash is literal",
			term:     `c:\temp`,
			expected: `c:\\temp`,
		},
		{
			name:     "mixed metacharacters",
			term:     `50%_off\now`,
			expected: `50\%\_off\\now`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLike(tt.term))
		})
	}
}
