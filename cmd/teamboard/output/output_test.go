package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"ids", FormatID, false},
		{"xml", FormatText, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestFormatter_Print(t *testing.T) {
	data := map[string]interface{}{"id": "card-1", "position": 1500}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Print(data))
	assert.JSONEq(t, `{"id":"card-1","position":1500}`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML, &buf).Print(data))
	assert.Contains(t, buf.String(), "id: card-1")
	assert.Contains(t, buf.String(), "position: 1500")

	buf.Reset()
	f := NewFormatter(FormatID, &buf)
	assert.False(t, f.Structured())
	require.NoError(t, f.PrintIDs([]string{"card-1", "card-2"}))
	assert.Equal(t, "card-1\ncard-2\n", buf.String())
}

func TestPrinter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.SetQuiet(true)
	p.Success("saved")
	p.Info("hint")
	assert.Empty(t, buf.String())

	p.Error("failed")
	assert.Contains(t, buf.String(), "failed")
}

func TestPrinter_TableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Table([]string{"ID", "Title"}, [][]string{
		{"card-1", "A"},
		{"card-22", "Bee"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Title")
	assert.Equal(t, "card-1   A", lines[2])
	assert.Equal(t, "card-22  Bee", lines[3])

	buf.Reset()
	p.Table([]string{"ID"}, nil)
	assert.Empty(t, buf.String())
}
