// Package frontmatter extracts leading metadata blocks from markdown files.
//
// Skill and command files carry a frontmatter block delimited by --- lines.
// These blocks are parsed as flat key: value pairs, splitting on the first
// colon, with no type coercion. This deliberately replicates the limited
// parsing existing skill files rely on; it is not YAML. Blocks delimited by
// +++ are parsed as TOML.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Result contains a parsed frontmatter block and the remaining content.
type Result struct {
	// Frontmatter contains the raw frontmatter bytes without delimiters
	Frontmatter []byte
	// Content contains the remaining content after the frontmatter block
	Content string
	// HasFrontmatter indicates whether a frontmatter block was found
	HasFrontmatter bool
	// Delimiter is the delimiter that opened the block ("---" or "+++")
	Delimiter string
}

// Split extracts a frontmatter block from content.
// Supports --- (flat key: value) and +++ (TOML) delimiters.
func Split(content []byte) Result {
	if bytes.HasPrefix(content, []byte("---\n")) || bytes.HasPrefix(content, []byte("---\r\n")) {
		return extract(content, []byte("---"))
	}

	if bytes.HasPrefix(content, []byte("+++\n")) || bytes.HasPrefix(content, []byte("+++\r\n")) {
		return extract(content, []byte("+++"))
	}

	return Result{
		Frontmatter:    nil,
		Content:        string(content),
		HasFrontmatter: false,
	}
}

// extract pulls out the block between delimiter lines.
func extract(content []byte, delimiter []byte) Result {
	remaining := content[len(delimiter):]

	// Handle both \n and \r\n line endings
	if bytes.HasPrefix(remaining, []byte("\r\n")) {
		remaining = remaining[2:]
	} else if bytes.HasPrefix(remaining, []byte("\n")) {
		remaining = remaining[1:]
	}

	var block []byte
	var bodyStart int
	delimFound := false

	if bytes.HasPrefix(remaining, delimiter) {
		// Empty frontmatter case: ---\n---\n
		block = []byte{}
		bodyStart = len(delimiter)
		delimFound = true
	} else {
		// Closing delimiter must start a line
		closing := append([]byte("\n"), delimiter...)
		idx := bytes.Index(remaining, closing)
		if idx != -1 {
			block = remaining[:idx]
			bodyStart = idx + len(closing)
			delimFound = true
		} else {
			closing = append([]byte("\r\n"), delimiter...)
			idx = bytes.Index(remaining, closing)
			if idx != -1 {
				block = remaining[:idx]
				bodyStart = idx + len(closing)
				delimFound = true
			}
		}
	}

	if !delimFound {
		// No closing delimiter, treat entire content as body
		return Result{
			Frontmatter:    nil,
			Content:        string(content),
			HasFrontmatter: false,
		}
	}

	clean := bytes.ReplaceAll(block, []byte("\r\n"), []byte("\n"))
	clean = bytes.TrimRight(clean, "\r")

	// Skip trailing newline after the closing delimiter
	if bodyStart < len(remaining) {
		if bytes.HasPrefix(remaining[bodyStart:], []byte("\r\n")) {
			bodyStart += 2
		} else if bytes.HasPrefix(remaining[bodyStart:], []byte("\n")) {
			bodyStart++
		}
	}

	var body string
	if bodyStart < len(remaining) {
		body = string(remaining[bodyStart:])
	}

	return Result{
		Frontmatter:    clean,
		Content:        body,
		HasFrontmatter: true,
		Delimiter:      string(delimiter),
	}
}

// Fields extracts and parses the frontmatter block of content into a flat
// field map. Content without a leading block yields an empty map.
func Fields(content []byte) map[string]string {
	res := Split(content)
	if !res.HasFrontmatter {
		return map[string]string{}
	}

	if res.Delimiter == "+++" {
		fields, err := parseTOML(res.Frontmatter)
		if err != nil {
			return map[string]string{}
		}
		return fields
	}

	return parseFlat(res.Frontmatter)
}

// parseFlat parses key: value lines, splitting each line on its first colon.
// Values are kept as strings; lines without a colon are ignored.
func parseFlat(block []byte) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(block), "\n") {
		if !strings.Contains(line, ":") {
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}

// parseTOML decodes a TOML block and stringifies its top-level scalar values.
// Nested tables and arrays are skipped.
func parseTOML(block []byte) (map[string]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(block, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML frontmatter: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case bool, int64, float64:
			fields[key] = fmt.Sprintf("%v", v)
		}
	}
	return fields, nil
}
