// Package scanner splits source files into lines for rule evaluation.
//
// Comment detection is a line-local heuristic, not a parser: only lines whose
// trimmed text starts with a comment marker are skipped. A block comment that
// opens mid-line, or whose body lines don't start with "*", is still scanned.
package scanner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"cmdr/scripts/check-style-tokens/locator"
)

// maxLineBytes bounds a single line; minified bundles are the only realistic way to hit it.
const maxLineBytes = 4 * 1024 * 1024

// ErrInvalidEncoding is returned for files that aren't valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Line is one non-comment line of a source file. It's only valid for the
// duration of the callback it's passed to.
type Line struct {
	Text    string
	Number  int // 1-based
	Path    string
	RelPath string
}

// Scan reads file and calls fn for each line that isn't a pure comment line.
// Any read or encoding error aborts the scan; so does an error returned by fn.
func Scan(fsys billy.Filesystem, file locator.File, fn func(Line) error) error {
	content, err := util.ReadFile(fsys, file.RelPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file.Path, err)
	}
	if !utf8.Valid(content) {
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, file.Path)
	}

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	number := 0
	for sc.Scan() {
		number++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if IsCommentLine(text) {
			continue
		}
		if err := fn(Line{Text: text, Number: number, Path: file.Path, RelPath: file.RelPath}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to split %s into lines: %w", file.Path, err)
	}
	return nil
}

// CountLines returns the number of physical lines in file.
func CountLines(fsys billy.Filesystem, file locator.File) (int, error) {
	f, err := fsys.Open(file.RelPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", file.Path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	count := 0
	for sc.Scan() {
		count++
	}
	return count, sc.Err()
}

// IsCommentLine reports whether the trimmed line starts with a comment marker:
// "//", "/*", "<!--", or a "*" continuation line of a block comment.
func IsCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "//"),
		strings.HasPrefix(trimmed, "/*"),
		strings.HasPrefix(trimmed, "<!--"):
		return true
	case trimmed == "*":
		return true
	case strings.HasPrefix(trimmed, "*"):
		next := trimmed[1]
		return next == ' ' || next == '\t' || next == '/'
	}
	return false
}
