package report_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/autotree/internal/report"
)

func TestAssemble(t *testing.T) {
	testCases := []struct {
		name     string
		rootPath string
		body     string
		expected string
	}{
		{
			name:     "with_body",
			rootPath: filepath.Join("workspace", "project"),
			body:     "a\n├── b\n",
			expected: "```plaintext\nproject\na\n├── b\n```\n",
		},
		{
			name:     "empty_body",
			rootPath: "project",
			body:     "",
			expected: "```plaintext\nproject\n```\n",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if document := report.Assemble(testCase.rootPath, testCase.body); document != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, document)
			}
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	root := t.TempDir()
	absoluteTarget := filepath.Join(t.TempDir(), "tree.md")
	testCases := []struct {
		name       string
		outputFile string
		expected   string
	}{
		{name: "default", outputFile: "  ", expected: filepath.Join(root, report.DefaultOutputFileName)},
		{name: "relative", outputFile: "docs/TREE.md", expected: filepath.Join(root, "docs", "TREE.md")},
		{name: "absolute", outputFile: absoluteTarget, expected: absoluteTarget},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if resolved := report.ResolveOutputPath(root, testCase.outputFile); resolved != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, resolved)
			}
		})
	}
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), report.DefaultOutputFileName)
	if err := os.WriteFile(outputPath, []byte("stale content that is longer"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	document := report.Assemble("project", "src\n")
	if err := report.Write(outputPath, document); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	written, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if string(written) != document {
		t.Fatalf("expected %q, got %q", document, string(written))
	}
}

func TestWriteReportsWriteError(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "missing", "nested", report.DefaultOutputFileName)
	err := report.Write(outputPath, "document")
	if err == nil {
		t.Fatalf("expected write error")
	}
	var writeError *report.WriteError
	if !errors.As(err, &writeError) {
		t.Fatalf("expected *report.WriteError, got %T", err)
	}
	if writeError.Path != outputPath {
		t.Fatalf("expected path %s, got %s", outputPath, writeError.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "not saved") {
		t.Fatalf("expected message to mention the unsaved tree, got %q", err.Error())
	}
}
