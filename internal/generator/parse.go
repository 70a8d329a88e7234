package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Reasoning models wrap their actual answer in think tags; code-fenced
// JSON is also common even when the prompt forbids markdown.
var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// cleanResponse strips think blocks and code fences from a model reply.
func cleanResponse(content string) string {
	content = thinkBlockRe.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// extractJSON returns the outermost JSON value delimited by the given
// byte pair within content, tolerating prose around it.
func extractJSON(content string, openByte, closeByte byte) (string, error) {
	start := strings.IndexByte(content, openByte)
	end := strings.LastIndexByte(content, closeByte)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no %c...%c found in model response", openByte, closeByte)
	}
	return content[start : end+1], nil
}

// parseEntries parses a model reply into card suggestions, dropping
// entries without a name.
func parseEntries(content string) ([]NamedEntry, error) {
	raw, err := extractJSON(cleanResponse(content), '[', ']')
	if err != nil {
		return nil, err
	}

	var entries []NamedEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse card list: %w", err)
	}

	out := entries[:0]
	for _, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			continue
		}
		out = append(out, entry)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model response contained no usable card names")
	}
	return out, nil
}

// parseEntry parses a single card suggestion.
func parseEntry(content string) (NamedEntry, error) {
	raw, err := extractJSON(cleanResponse(content), '{', '}')
	if err != nil {
		return NamedEntry{}, err
	}

	var entry NamedEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return NamedEntry{}, fmt.Errorf("parse card suggestion: %w", err)
	}
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return NamedEntry{}, fmt.Errorf("model response contained no card name")
	}
	return entry, nil
}
