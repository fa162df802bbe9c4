package tree

import (
	"os"
	"path/filepath"
	"slices"
)

type walker struct {
	options   Options
	compare   Comparator
	ancestors map[string]struct{}
}

func newWalker(options Options, compare Comparator) *walker {
	if options.MaxLevel <= 0 {
		options.MaxLevel = DefaultMaxLevel
	}
	return &walker{
		options:   options,
		compare:   compare,
		ancestors: make(map[string]struct{}),
	}
}

// Walk visits every non-ignored entry under rootPath depth-first, ordering
// siblings with the configured comparator. Filesystem errors never stop the
// walk; the affected entry or directory is pruned and reported through
// Options.Warn when it is set.
func Walk(rootPath string, options Options, visit Visitor) {
	compare := options.Compare
	if compare == nil {
		compare = NewNaturalComparator(options.Language)
	}
	newWalker(options, compare).run(rootPath, visit)
}

func (walker *walker) run(rootPath string, visit Visitor) {
	if visit == nil {
		return
	}
	walker.ancestors[resolveDirectory(rootPath)] = struct{}{}
	walker.walk(rootPath, 0, visit)
}

func (walker *walker) walk(directoryPath string, level int, visit Visitor) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		walker.warn(directoryPath, readDirectoryError)
		return
	}

	childNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if walker.options.Ignore.Contains(directoryEntry.Name()) {
			continue
		}
		childNames = append(childNames, directoryEntry.Name())
	}
	if walker.compare != nil {
		slices.SortStableFunc(childNames, walker.compare)
	}

	for _, childName := range childNames {
		childPath := filepath.Join(directoryPath, childName)
		// os.Stat follows symbolic links, so a link to a directory is walked as one.
		childInfo, statError := os.Stat(childPath)
		if statError != nil {
			walker.warn(childPath, statError)
			continue
		}
		entry := Entry{
			Name:  childName,
			Path:  childPath,
			IsDir: childInfo.IsDir(),
			Level: level + 1,
		}
		if !visit(entry) || !entry.IsDir {
			continue
		}
		walker.descend(entry, visit)
	}
}

func (walker *walker) descend(entry Entry, visit Visitor) {
	if entry.Level >= walker.options.MaxLevel {
		walker.warn(entry.Path, errLevelCeiling)
		return
	}
	resolvedPath := resolveDirectory(entry.Path)
	if _, onPath := walker.ancestors[resolvedPath]; onPath {
		walker.warn(entry.Path, errDirectoryCycle)
		return
	}
	walker.ancestors[resolvedPath] = struct{}{}
	walker.walk(entry.Path, entry.Level, visit)
	delete(walker.ancestors, resolvedPath)
}

func (walker *walker) warn(path string, err error) {
	if walker.options.Warn != nil {
		walker.options.Warn(path, err)
	}
}

func resolveDirectory(directoryPath string) string {
	resolvedPath, resolveError := filepath.EvalSymlinks(directoryPath)
	if resolveError != nil {
		return filepath.Clean(directoryPath)
	}
	return resolvedPath
}
