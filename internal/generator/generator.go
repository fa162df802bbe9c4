// Package generator ties traversal, depth reconciliation and the report
// envelope together into the single operation autotree performs for a project.
package generator

import (
	"path/filepath"
	"strings"

	"github.com/temirov/autotree/internal/report"
	"github.com/temirov/autotree/internal/tree"
	"github.com/temirov/autotree/internal/utils"
)

// Request describes one generation.
type Request struct {
	Root string
	// IgnoreNames defaults to tree.DefaultIgnoreNames when empty.
	IgnoreNames []string
	// RequestedDepth is the user supplied limit; zero means unlimited.
	RequestedDepth int
	// OutputFile is resolved against Root unless absolute.
	OutputFile string
	// DryRun skips writing the document.
	DryRun bool
	Warn   func(path string, err error)
}

// Result holds everything produced for a Request.
type Result struct {
	Root        string
	OutputPath  string
	IgnoreNames []string
	Depth       tree.DepthDecision
	Body        string
	Document    string
	Written     bool
}

// Generate renders the project tree for request and writes it unless
// request.DryRun is set. Traversal problems never fail a generation; the only
// error returned is a *report.WriteError, in which case the Result still
// carries the rendered document.
func Generate(request Request) (Result, error) {
	root := absoluteRoot(request.Root)
	ignoreNames := NormalizeIgnoreNames(request.IgnoreNames)
	options := tree.Options{
		Ignore: tree.NewIgnoreSet(ignoreNames...),
		Warn:   request.Warn,
	}

	result := Result{
		Root:        root,
		OutputPath:  report.ResolveOutputPath(root, request.OutputFile),
		IgnoreNames: ignoreNames,
	}
	result.Depth = tree.DepthDecision{Requested: request.RequestedDepth}
	if !result.Depth.Unlimited() {
		result.Depth = tree.ReconcileDepth(request.RequestedDepth, tree.ProbeDepth(root, options))
		options.DepthLimit = result.Depth.Effective
	}

	result.Body = tree.Render(root, options)
	result.Document = report.Assemble(root, result.Body)
	if request.DryRun {
		return result, nil
	}
	if writeError := report.Write(result.OutputPath, result.Document); writeError != nil {
		return result, writeError
	}
	result.Written = true
	return result, nil
}

// Preview renders the document for request without writing it.
func Preview(request Request) Result {
	request.DryRun = true
	result, _ := Generate(request)
	return result
}

// ProjectDepth reports the natural depth of root for the given ignore names.
func ProjectDepth(root string, ignoreNames []string) int {
	options := tree.Options{Ignore: tree.NewIgnoreSet(NormalizeIgnoreNames(ignoreNames)...)}
	return tree.ProbeDepth(absoluteRoot(root), options)
}

// NormalizeIgnoreNames trims and deduplicates names, dropping blanks. An empty
// result falls back to tree.DefaultIgnoreNames.
func NormalizeIgnoreNames(names []string) []string {
	trimmedNames := make([]string, 0, len(names))
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		trimmedNames = append(trimmedNames, trimmedName)
	}
	if len(trimmedNames) == 0 {
		return tree.DefaultIgnoreNames()
	}
	return utils.DeduplicatePatterns(trimmedNames)
}

func absoluteRoot(root string) string {
	if root == "" {
		root = "."
	}
	absolutePath, absolutePathError := filepath.Abs(root)
	if absolutePathError != nil {
		return filepath.Clean(root)
	}
	return absolutePath
}
