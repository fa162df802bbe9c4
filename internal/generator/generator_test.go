package generator_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/autotree/internal/generator"
	"github.com/temirov/autotree/internal/report"
)

func createFiles(t *testing.T, root string, relativePaths ...string) {
	t.Helper()
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
}

func TestGenerateWritesDocument(t *testing.T) {
	root := filepath.Join(t.TempDir(), "project")
	createFiles(t, root, "src/main.go", "node_modules/pkg/index.js", ".git/HEAD", "README.md")

	result, err := generator.Generate(generator.Request{Root: root})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	expectedDocument := "```plaintext\nproject\nREADME.md\nsrc\n├── main.go\n```\n"
	if result.Document != expectedDocument {
		t.Fatalf("expected %q, got %q", expectedDocument, result.Document)
	}
	expectedPath := filepath.Join(root, report.DefaultOutputFileName)
	if result.OutputPath != expectedPath || !result.Written {
		t.Fatalf("expected document written to %s, got %+v", expectedPath, result)
	}
	written, readErr := os.ReadFile(expectedPath)
	if readErr != nil {
		t.Fatalf("read output: %v", readErr)
	}
	if string(written) != expectedDocument {
		t.Fatalf("written document mismatch: %q", string(written))
	}
}

func TestGenerateClampsRequestedDepth(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "a/b/file.txt")

	testCases := []struct {
		name            string
		requested       int
		expectEffective int
		expectClamped   bool
		expectBody      string
	}{
		{name: "clamped", requested: 100, expectEffective: 3, expectClamped: true, expectBody: "a\n├── b\n│   ├── file.txt\n"},
		{name: "within_bounds", requested: 1, expectEffective: 1, expectBody: "a\n"},
		{name: "unlimited", requested: 0, expectEffective: 0, expectBody: "a\n├── b\n│   ├── file.txt\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := generator.Preview(generator.Request{Root: root, RequestedDepth: testCase.requested})
			if result.Depth.Effective != testCase.expectEffective {
				t.Fatalf("expected effective %d, got %d", testCase.expectEffective, result.Depth.Effective)
			}
			if result.Depth.Clamped != testCase.expectClamped {
				t.Fatalf("expected clamped %t, got %t", testCase.expectClamped, result.Depth.Clamped)
			}
			if result.Body != testCase.expectBody {
				t.Fatalf("expected body %q, got %q", testCase.expectBody, result.Body)
			}
			if result.Written {
				t.Fatalf("preview must not write")
			}
		})
	}
	if _, statErr := os.Stat(filepath.Join(root, report.DefaultOutputFileName)); !os.IsNotExist(statErr) {
		t.Fatalf("preview created an output file")
	}
}

func TestGenerateReturnsWriteError(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "main.go")
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	result, err := generator.Generate(generator.Request{Root: root, OutputFile: "blocker/TREE.md"})
	var writeError *report.WriteError
	if !errors.As(err, &writeError) {
		t.Fatalf("expected *report.WriteError, got %v", err)
	}
	if result.Document == "" || result.Written {
		t.Fatalf("expected computed but unwritten document, got %+v", result)
	}
}

func TestNormalizeIgnoreNames(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "defaults_when_empty", input: nil, expected: []string{"node_modules", ".git"}},
		{name: "defaults_when_blank", input: []string{" ", ""}, expected: []string{"node_modules", ".git"}},
		{name: "trims_and_deduplicates", input: []string{" dist", "dist", "build "}, expected: []string{"dist", "build"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if normalized := generator.NormalizeIgnoreNames(testCase.input); !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}

func TestProjectDepth(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "a/b/file.txt", "node_modules/x/y/z/w")
	if depth := generator.ProjectDepth(root, nil); depth != 3 {
		t.Fatalf("expected depth 3, got %d", depth)
	}
	if depth := generator.ProjectDepth(root, []string{"a"}); depth != 5 {
		t.Fatalf("expected depth 5 when only a is ignored, got %d", depth)
	}
}
