package config

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/temirov/autotree/internal/tree"
	"github.com/temirov/autotree/internal/utils"
)

// IgnoreFileName lists additional ignore names inside a project root.
const IgnoreFileName = ".autotreeignore"

// ErrInvalidDepth reports a depth that is not a plain non-negative integer.
var ErrInvalidDepth = errors.New("depth must be a positive integer without signs or decimals")

var depthPattern = regexp.MustCompile(`^\d+$`)

// ParseDepth validates a user supplied depth. Empty input and "0" mean
// unlimited and return zero. Values too large for an int become math.MaxInt
// and are later clamped to the project depth.
func ParseDepth(input string) (int, error) {
	trimmedInput := strings.TrimSpace(input)
	if trimmedInput == "" {
		return 0, nil
	}
	if !depthPattern.MatchString(trimmedInput) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, input)
	}
	depth, conversionError := strconv.Atoi(trimmedInput)
	if errors.Is(conversionError, strconv.ErrRange) {
		return math.MaxInt, nil
	}
	if conversionError != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, input)
	}
	return depth, nil
}

// ParseIgnoreList splits comma separated ignore names. Blank input yields the
// default ignore names.
func ParseIgnoreList(input string) []string {
	names := utils.SplitCommaSeparated(input)
	if len(names) == 0 {
		return tree.DefaultIgnoreNames()
	}
	return utils.DeduplicatePatterns(names)
}

// LoadIgnoreNames reads literal ignore names from ignoreFilePath, one or more
// comma separated names per line. Blank lines and lines starting with '#' are
// skipped. A missing file yields no names.
//
// #nosec G304
func LoadIgnoreNames(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", ignoreFilePath, openFileError)
	}
	defer fileHandle.Close()

	var names []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		names = append(names, utils.SplitCommaSeparated(trimmedLine)...)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("read %s: %w", ignoreFilePath, scanError)
	}
	return utils.DeduplicatePatterns(names), nil
}
