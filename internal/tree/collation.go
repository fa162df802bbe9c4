package tree

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders sibling names. It returns a negative number when left
// sorts first, zero when equal and a positive number otherwise.
type Comparator func(left, right string) int

// NewNaturalComparator returns a case-sensitive comparator that follows the
// collation rules of tag and compares digit runs by numeric value, so "file2"
// sorts before "file10". Names the collation considers equal fall back to
// byte order. The comparator owns a collator and must not be shared between
// goroutines.
func NewNaturalComparator(tag language.Tag) Comparator {
	collator := collate.New(tag, collate.Numeric)
	return func(left, right string) int {
		if result := collator.CompareString(left, right); result != 0 {
			return result
		}
		return strings.Compare(left, right)
	}
}
