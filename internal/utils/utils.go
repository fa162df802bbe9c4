// Package utils contains general helpers shared across autotree.
package utils

import "strings"

// Configuration file constants used across the project.
const (
	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding ConfigFileName.
	GlobalConfigDirectoryName = ".autotree"
	// LocalConfigFileName is the workspace configuration file inside a project root.
	LocalConfigFileName = ".autotree.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

const listSeparator = ","

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// SplitCommaSeparated splits every value on commas and returns the trimmed,
// non-empty parts in order.
func SplitCommaSeparated(values ...string) []string {
	var parts []string
	for _, value := range values {
		for _, part := range strings.Split(value, listSeparator) {
			trimmedPart := strings.TrimSpace(part)
			if trimmedPart == "" {
				continue
			}
			parts = append(parts, trimmedPart)
		}
	}
	return parts
}
