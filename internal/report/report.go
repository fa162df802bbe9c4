// Package report wraps a rendered tree in its fenced envelope and writes the
// resulting document to disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultOutputFileName is used when no output file is configured.
	DefaultOutputFileName = "PROJECT_TREE.md"

	fenceOpening = "```plaintext\n"
	fenceClosing = "```\n"

	outputFilePermissions os.FileMode = 0o644

	errorWriteFormat = "tree computed but not saved to %s: %v"
)

// WriteError reports that the document was produced but could not be saved.
type WriteError struct {
	Path string
	Err  error
}

// Error returns the error string.
func (writeError *WriteError) Error() string {
	return fmt.Sprintf(errorWriteFormat, writeError.Path, writeError.Err)
}

// Unwrap exposes the underlying filesystem error.
func (writeError *WriteError) Unwrap() error {
	return writeError.Err
}

// Assemble produces the final document: an opening fence, the base name of
// rootPath, the rendered body and a closing fence.
func Assemble(rootPath string, body string) string {
	var builder strings.Builder
	builder.Grow(len(fenceOpening) + len(rootPath) + len(body) + len(fenceClosing) + 1)
	builder.WriteString(fenceOpening)
	builder.WriteString(filepath.Base(rootPath))
	builder.WriteString("\n")
	builder.WriteString(body)
	builder.WriteString(fenceClosing)
	return builder.String()
}

// ResolveOutputPath places relative output names inside rootPath. Absolute
// paths are returned unchanged.
func ResolveOutputPath(rootPath string, outputFile string) string {
	trimmedOutputFile := strings.TrimSpace(outputFile)
	if trimmedOutputFile == "" {
		trimmedOutputFile = DefaultOutputFileName
	}
	if filepath.IsAbs(trimmedOutputFile) {
		return filepath.Clean(trimmedOutputFile)
	}
	return filepath.Join(rootPath, trimmedOutputFile)
}

// Write stores document at outputPath as UTF-8, replacing any existing file.
//
// #nosec G306
func Write(outputPath string, document string) error {
	if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermissions); writeError != nil {
		return &WriteError{Path: outputPath, Err: writeError}
	}
	return nil
}
