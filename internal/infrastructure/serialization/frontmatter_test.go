package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	ID       string   `yaml:"id"`
	Position float64  `yaml:"position"`
	Tags     []string `yaml:"tags,omitempty"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	data, err := MarshalFrontmatter(meta{ID: "card-1", Position: 1500.5, Tags: []string{"a"}}, "Some *markdown*")
	require.NoError(t, err)
	assert.Contains(t, string(data), "---\nid: card-1\n")

	var got meta
	body, err := UnmarshalFrontmatter(data, &got)
	require.NoError(t, err)
	assert.Equal(t, meta{ID: "card-1", Position: 1500.5, Tags: []string{"a"}}, got)
	assert.Equal(t, "Some *markdown*", body)
}

func TestUnmarshalFrontmatter_NoFrontmatter(t *testing.T) {
	var got meta
	body, err := UnmarshalFrontmatter([]byte("just text\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, "just text", body)
	assert.Empty(t, got.ID)
}

func TestUnmarshalFrontmatter_Errors(t *testing.T) {
	var got meta
	_, err := UnmarshalFrontmatter([]byte("---\nid: x\n"), &got)
	assert.Error(t, err)

	_, err = UnmarshalFrontmatter([]byte("---\nid: [unclosed\n---\n"), &got)
	assert.Error(t, err)
}
