package serialization

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
)

// MarshalFrontmatter writes meta as a YAML frontmatter block followed by a
// markdown body.
func MarshalFrontmatter(meta interface{}, content string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	yamlData, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	buf.Write(yamlData)

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	if content != "" {
		buf.WriteString(content)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// UnmarshalFrontmatter decodes the frontmatter of data into meta and
// returns the markdown body. A document without frontmatter is all body.
func UnmarshalFrontmatter(data []byte, meta interface{}) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return "", nil
	}
	if strings.TrimSpace(scanner.Text()) != yamlDelimiter {
		return strings.TrimSpace(string(data)), nil
	}

	var frontmatterLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == yamlDelimiter {
			closed = true
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}
	if !closed {
		return "", fmt.Errorf("unterminated frontmatter")
	}

	if len(frontmatterLines) > 0 {
		if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), meta); err != nil {
			return "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
		}
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading document: %w", err)
	}

	return strings.TrimSpace(strings.Join(contentLines, "\n")), nil
}
