package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Team Board", "team-board"},
		{"punctuation", "Q3 / Roadmap!!", "q3-roadmap"},
		{"accents", "Équipe Café", "equipe-cafe"},
		{"edges", "  --Sprint 12--  ", "sprint-12"},
		{"empty", "   ", Fallback},
		{"symbols only", "✓✓✓", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerate_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 20)
	got := Generate(long)
	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))

	assert.Equal(t, "abc", GenerateN("abc-def", 4))
	assert.Equal(t, "abc-def", GenerateN("abc def", 0))
}
