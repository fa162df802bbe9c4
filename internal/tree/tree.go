// Package tree walks a project directory and produces the two traversal
// results autotree needs: the deepest nesting level of the project and the
// indented textual listing of its entries.
package tree

import (
	"errors"
	"sort"

	"golang.org/x/text/language"
)

const (
	// NodeModulesDirectoryName is ignored unless the caller supplies its own ignore names.
	NodeModulesDirectoryName = "node_modules"
	// GitDirectoryName is ignored unless the caller supplies its own ignore names.
	GitDirectoryName = ".git"

	// DefaultMaxLevel bounds descent when Options.MaxLevel is not set.
	DefaultMaxLevel = 4096
)

var (
	errDirectoryCycle = errors.New("directory already on the traversal path")
	errLevelCeiling   = errors.New("maximum traversal level reached")
)

// DefaultIgnoreNames returns the ignore names used when none are configured.
func DefaultIgnoreNames() []string {
	return []string{NodeModulesDirectoryName, GitDirectoryName}
}

// IgnoreSet holds literal entry names that are excluded, together with their
// subtrees, at any depth. Matching is exact and case-sensitive.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from the provided names.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is ignored.
func (set IgnoreSet) Contains(name string) bool {
	if set == nil {
		return false
	}
	_, ignored := set[name]
	return ignored
}

// Names returns the ignored names in byte order.
func (set IgnoreSet) Names() []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures a traversal.
type Options struct {
	// Ignore lists entry names skipped together with their subtrees.
	Ignore IgnoreSet
	// DepthLimit excludes entries nested deeper than the limit from rendering.
	// Zero means unlimited. ProbeDepth disregards it.
	DepthLimit int
	// Language selects the collation used to order siblings when Compare is
	// nil. The zero value is the root collation, which does not vary with the
	// user's locale.
	Language language.Tag
	// Compare overrides the sibling ordering.
	Compare Comparator
	// Warn receives entries that were pruned because of filesystem errors.
	Warn func(path string, err error)
	// MaxLevel stops descent below this nesting level. Zero uses DefaultMaxLevel.
	MaxLevel int
}

// Entry is a single directory child observed during traversal.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	// Level is the nesting level; the root's direct children are level 1.
	Level int
}

// Visitor is called for every non-ignored entry. Returning false keeps the
// walk from descending into the entry when it is a directory.
type Visitor func(entry Entry) bool
