// Package docs embeds the user documentation shown by the folio topic
// command. Every *.md file in this directory is one topic, named after the
// file; readme.md is the index listing all of them and is served as the
// default topic, never as part of "*".
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var content embed.FS

// GetTopic returns the text of a single documentation topic.
func GetTopic(topic string) (string, error) {
	raw, err := content.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(raw), nil
}

// GetTopics returns the text of the given topics concatenated in order.
// The name "*" expands, in place, to every topic sorted by name.
func GetTopics(topics ...string) (string, error) {
	expanded := make([]string, 0, len(topics))
	for _, topic := range topics {
		if topic != "*" {
			expanded = append(expanded, topic)
			continue
		}
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		expanded = append(expanded, all...)
	}

	var b strings.Builder
	for _, topic := range expanded {
		text, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns every topic name, sorted. The readme indexes the
// topics and is excluded.
func GetAllTopics() ([]string, error) {
	entries, err := content.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".md")
		if name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics, nil
}
