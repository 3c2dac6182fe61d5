// Package domain implements the cpm rename and scaffolding logic.
package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "cpm.dev/pkg/cpm/internal/model"
)

// LineRewriter transforms a single line and reports whether it changed.
type LineRewriter func(line string) (string, bool)

// includePrefix matches a double-quoted include up to the segment that holds
// the module name. The prefix may only contain '.', '/', letters, digits and
// '_', and must end in '/' so the name is always a whole path segment.
const includePrefix = `(#include ")((?:[./\w]*/)?)`

// RewriteInclude renames oldName to newName inside a double-quoted include
// directive. Both `#include ".../old/old.h"` and `#include ".../old.h"` are
// handled; angle-bracket includes are left alone.
func RewriteInclude(line, oldName, newName string) (string, bool) {
	rewrite, err := IncludeRewriter(oldName, newName)
	if err != nil {
		return line, false
	}

	return rewrite(line)
}

// RewriteGuard replaces the include guard token OLD_H with NEW_H wherever it
// appears on the line, comments included. Names are upper-cased first.
//
// Only the end of the token is anchored: an identifier that merely ends in
// OLD_H (MYOLD_H) is rewritten as well, while OLD_H_ and OLD_HELPER are not.
func RewriteGuard(line, oldName, newName string) (string, bool) {
	rewrite, err := GuardRewriter(oldName, newName)
	if err != nil {
		return line, false
	}

	return rewrite(line)
}

// RewriteLiteral replaces every occurrence of oldText with newText.
func RewriteLiteral(line, oldText, newText string) (string, bool) {
	if oldText == "" {
		return line, false
	}

	rewritten := strings.ReplaceAll(line, oldText, newText)

	return rewritten, rewritten != line
}

// IncludeRewriter compiles the include patterns for a name pair once and
// returns a LineRewriter applying them. Names that cannot be matched, such as
// invalid UTF-8, fail with ErrInvalidName.
func IncludeRewriter(oldName, newName string) (LineRewriter, error) {
	if oldName == "" {
		return unchanged, nil
	}

	quoted := regexp.QuoteMeta(oldName)
	literal := escapeReplacement(newName)

	withDir, err := compileName(oldName, includePrefix+quoted+`/`+quoted+`(\.h")`)
	if err != nil {
		return nil, err
	}

	plain, err := compileName(oldName, includePrefix+quoted+`(\.h")`)
	if err != nil {
		return nil, err
	}

	withDirRepl := "${1}${2}" + literal + "/" + literal + "${3}"
	plainRepl := "${1}${2}" + literal + "${3}"

	return func(line string) (string, bool) {
		rewritten := withDir.ReplaceAllString(line, withDirRepl)
		rewritten = plain.ReplaceAllString(rewritten, plainRepl)

		return rewritten, rewritten != line
	}, nil
}

// GuardRewriter compiles the guard pattern for a name pair once and returns a
// LineRewriter applying it.
func GuardRewriter(oldName, newName string) (LineRewriter, error) {
	if oldName == "" {
		return unchanged, nil
	}

	guard, err := compileName(oldName, regexp.QuoteMeta(m.GuardName(oldName))+`\b`)
	if err != nil {
		return nil, err
	}

	replacement := m.GuardName(newName)

	return func(line string) (string, bool) {
		rewritten := guard.ReplaceAllLiteralString(line, replacement)

		return rewritten, rewritten != line
	}, nil
}

// LiteralRewriter binds RewriteLiteral to a text pair.
func LiteralRewriter(oldText, newText string) LineRewriter {
	return func(line string) (string, bool) {
		return RewriteLiteral(line, oldText, newText)
	}
}

// RewriteContent applies rewrite to every line of content. Line endings,
// including a missing trailing newline, are preserved.
func RewriteContent(content []byte, rewrite LineRewriter) ([]byte, bool) {
	lines := strings.Split(string(content), "\n")
	changed := false

	for i, line := range lines {
		newLine, lineChanged := rewrite(line)
		if lineChanged {
			lines[i] = newLine
			changed = true
		}
	}

	if !changed {
		return content, false
	}

	return []byte(strings.Join(lines, "\n")), true
}

func unchanged(line string) (string, bool) {
	return line, false
}

func compileName(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("name %q: %w: %w", name, m.ErrInvalidName, err)
	}

	return re, nil
}

// escapeReplacement escapes '$' so a name is inserted literally by
// Regexp.ReplaceAllString.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
