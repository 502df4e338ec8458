package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Classifier decides whether a color literal is the fallback argument of a
// theme accessor call.
//
// It only looks at the text before the match on the same line. That's a textual
// stand-in for "is this an argument of a whitelisted call", good enough for the
// one-call-per-line style of widget code. Known gaps: calls split across lines
// aren't seen, and a closing parenthesis before the match (nested calls such as
// getToken('a', fn(x) + '#fff')) ends the search.
type Classifier struct {
	accessors   map[string]bool
	fallbackArg *regexp.Regexp
}

// NewClassifier builds a classifier for the given accessor names.
func NewClassifier(accessors []string) (*Classifier, error) {
	if len(accessors) == 0 {
		return nil, fmt.Errorf("at least one accessor name is required")
	}

	names := make(map[string]bool, len(accessors))
	quoted := make([]string, 0, len(accessors))
	for _, name := range accessors {
		if !identifierRegex.MatchString(name) {
			return nil, fmt.Errorf("invalid accessor name %q", name)
		}
		if names[name] {
			continue
		}
		names[name] = true
		quoted = append(quoted, regexp.QuoteMeta(name))
	}

	// helper('token-name', <match>  -- optionally with the fallback's opening quote.
	pattern := `(?:^|[^\w$])(?:` + strings.Join(quoted, "|") + `)\(\s*['"` + "`" + `][\w.-]+['"` + "`" + `]\s*,\s*['"` + "`" + `]?$`

	return &Classifier{
		accessors:   names,
		fallbackArg: regexp.MustCompile(pattern),
	}, nil
}

// IsAccessorFallback reports whether the match starting at byte offset col of
// line is inside an accessor call.
func (c *Classifier) IsAccessorFallback(line string, col int) bool {
	if col <= 0 || col > len(line) {
		return false
	}
	prefix := line[:col]
	if c.fallbackArg.MatchString(prefix) {
		return true
	}
	return c.insideOpenCall(prefix)
}

// insideOpenCall scans backward for an accessor's opening parenthesis,
// giving up at the first closing one.
func (c *Classifier) insideOpenCall(prefix string) bool {
	for i := len(prefix) - 1; i >= 0; i-- {
		switch prefix[i] {
		case ')':
			return false
		case '(':
			if c.accessors[identifierBefore(prefix, i)] {
				return true
			}
		}
	}
	return false
}

// identifierBefore returns the identifier ending right before index i.
func identifierBefore(s string, i int) string {
	end := i
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && isWordByte(s[start-1]) {
		start--
	}
	return s[start:end]
}
