package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is the output format selected with --output
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatID prints only ids, one per line, for piping into other commands
	FormatID Format = "id"
)

// Formatter writes structured command results
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the configured format
func (f *Formatter) Format() Format {
	return f.format
}

// Structured reports whether results should be encoded instead of drawn
// as text
func (f *Formatter) Structured() bool {
	return f.format == FormatJSON || f.format == FormatYAML
}

// Print encodes data in the configured format
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(data)
	case FormatText, FormatID:
		return f.printText(data)
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

// PrintIDs writes one id per line
func (f *Formatter) PrintIDs(ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(f.writer, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) printText(data interface{}) error {
	var err error
	switch v := data.(type) {
	case string:
		_, err = fmt.Fprintln(f.writer, v)
	case fmt.Stringer:
		_, err = fmt.Fprintln(f.writer, v.String())
	default:
		_, err = fmt.Fprintln(f.writer, v)
	}
	return err
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "id", "ids":
		return FormatID, nil
	default:
		return FormatText, fmt.Errorf("invalid format '%s': must be one of: text, json, yaml, id", s)
	}
}
