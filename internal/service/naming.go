// internal/service/naming.go
package service

import (
	"fmt"
	"strconv"
	"strings"
)

const copyInfix = " Copy "

// NextCopyName computes a display name for a duplicate of source that does
// not collide with any sibling name, of the form "{base} Copy {N}".
//
// If source itself is already a copy ("{X} Copy {k}"), the base is X, so
// duplicating a copy counts up from the original name instead of stacking
// "Copy" suffixes. N is the smallest positive integer whose "{base} Copy {N}"
// is absent from siblings, filling gaps before extending the sequence.
//
// Pure function: the caller supplies the current sibling names and is
// responsible for their freshness. A concurrent duplicate between the scan
// and the eventual write can still take the name; uniqueness is not
// re-validated at write time.
func NextCopyName(source string, siblings []string) string {
	base := copyBaseName(source)
	prefix := base + copyInfix

	taken := make(map[int]bool)
	for _, name := range siblings {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if k, ok := copyNumber(name[len(prefix):]); ok {
			taken[k] = true
		}
	}

	n := 1
	for taken[n] {
		n++
	}
	return fmt.Sprintf("%s Copy %d", base, n)
}

// copyBaseName strips one trailing " Copy {k}" suffix, if present.
func copyBaseName(name string) string {
	i := strings.LastIndex(name, copyInfix)
	if i < 0 {
		return name
	}
	if _, ok := copyNumber(name[i+len(copyInfix):]); ok {
		return name[:i]
	}
	return name
}

// copyNumber parses s as the integer part of a copy suffix: a plain
// positive decimal, nothing else.
func copyNumber(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	k, err := strconv.Atoi(s)
	if err != nil || k < 1 {
		return 0, false
	}
	return k, true
}
