// Package util provides common utility functions
package util

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter extracts YAML frontmatter from content
// Returns the parsed YAML as a map, the body (content after frontmatter), and whether frontmatter exists
func ParseFrontmatter(content string) (yamlData map[string]interface{}, body string, hasFrontmatter bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return nil, content, false
	}

	rest := normalized[len(frontmatterDelimiter)+1:]
	endIndex := strings.Index(rest, "\n"+frontmatterDelimiter)
	if endIndex == -1 {
		return nil, content, false
	}

	yamlContent := rest[:endIndex]
	body = strings.TrimPrefix(rest[endIndex+len("\n"+frontmatterDelimiter):], "\n")

	yamlData = make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(yamlContent), &yamlData); err != nil {
		// Broken YAML is treated as body text
		return nil, content, false
	}

	return yamlData, body, true
}

// FrontmatterString returns a string value from frontmatter, or "" when absent or not a scalar
func FrontmatterString(meta map[string]interface{}, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}, map[string]interface{}:
		return ""
	default:
		b, err := yaml.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}

// FrontmatterList returns a list value from frontmatter.
// A comma separated string is split, a YAML sequence is flattened to strings.
func FrontmatterList(meta map[string]interface{}, key string) []string {
	v, ok := meta[key]
	if !ok || v == nil {
		return nil
	}
	var out []string
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []interface{}:
		for _, item := range t {
			if s := FrontmatterString(map[string]interface{}{"v": item}, "v"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
