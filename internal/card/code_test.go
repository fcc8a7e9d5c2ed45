package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viktorhino/wowkards-mvp/internal/card"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ab3k", card.NormalizeCode("  AB3K "))
	assert.Equal(t, "", card.NormalizeCode("   "))
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid code", input: "ab3k", want: true},
		{name: "too short", input: "ab3", want: false},
		{name: "too long", input: "ab3kx", want: false},
		{name: "excluded ambiguous character", input: "ab1k", want: false},
		{name: "uppercase rejected before normalization", input: "AB3K", want: false},
		{name: "slug-like input", input: "john-doe", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, card.IsCode(tt.input))
		})
	}
}
