package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Kind tags a rule variant. The set is closed: adding a rule means adding a Kind
// and a case in Linter.evaluate.
type Kind int

const (
	KindHardcodedColor Kind = iota
	KindVarInStyle
	KindVarInString
)

// Policy decides whether a match needs the context classifier.
type Policy int

const (
	// PolicyRequiresContextCheck matches are violations unless they're an accessor fallback.
	PolicyRequiresContextCheck Policy = iota
	// PolicyAlwaysViolation matches are violations unconditionally.
	PolicyAlwaysViolation
)

// String returns the kebab-case name used in reports.
func (p Policy) String() string {
	switch p {
	case PolicyRequiresContextCheck:
		return "requires-context-check"
	case PolicyAlwaysViolation:
		return "always-violation"
	default:
		return "unknown"
	}
}

// Rule is one check in the fixed rule set.
type Rule struct {
	ID          string
	Kind        Kind
	Policy      Policy
	Description string
}

// Rule IDs as they appear in diagnostics.
const (
	RuleHardcodedColor = "hardcoded-color"
	RuleVarInStyle     = "css-var-in-style"
	RuleVarInString    = "css-var-in-string"
)

// AllRules is the rule set, in evaluation order.
var AllRules = []Rule{
	{
		ID:          RuleHardcodedColor,
		Kind:        KindHardcodedColor,
		Policy:      PolicyRequiresContextCheck,
		Description: "Color literals (#rgb, #rrggbb, #rrggbbaa, rgb(), rgba(), hsl(), hsla()) outside a theme accessor fallback",
	},
	{
		ID:          RuleVarInStyle,
		Kind:        KindVarInStyle,
		Policy:      PolicyAlwaysViolation,
		Description: "var(--token) assigned as a string to a runtime .style property",
	},
	{
		ID:          RuleVarInString,
		Kind:        KindVarInString,
		Policy:      PolicyAlwaysViolation,
		Description: "var(--token) inside any other quoted string",
	},
}

// GetRuleByID returns a rule by its ID, or nil.
func GetRuleByID(id string) *Rule {
	for i := range AllRules {
		if AllRules[i].ID == id {
			return &AllRules[i]
		}
	}
	return nil
}

// match is one pattern hit on a line. start/end are byte offsets.
type match struct {
	text  string
	start int
	end   int
}

// column returns the 1-based column of the match.
func (m match) column() int {
	return m.start + 1
}

var (
	// Maximal runs of hex digits after '#'; length and boundaries are checked in code.
	hexRunRegex = regexp.MustCompile(`#[0-9a-fA-F]+`)

	// Color functions; the match ends at the opening parenthesis.
	colorFuncRegex = regexp.MustCompile(`\b(?:rgba?|hsla?)\(`)

	// .style.<prop> = '<...var(--x)...>' with any of the three JS quote styles.
	varInStyleRegex = regexp.MustCompile(`\.style\.[A-Za-z_$][\w$]*\s*=\s*(?:'[^']*var\(--[\w-]+[^']*'|"[^"]*var\(--[\w-]+[^"]*"|` + "`[^`]*var\\(--[\\w-]+[^`]*`" + `)`)

	// Quoted strings, single, double or backtick. Escapes aren't handled.
	quotedStringRegex = regexp.MustCompile(`'[^']*'|"[^"]*"|` + "`[^`]*`")

	varRefRegex = regexp.MustCompile(`var\(--[\w-]+[^)'"` + "`" + `]*\)?`)
)

// findColorLiterals returns every hex token and color-function call on the line,
// ordered by column.
func findColorLiterals(text string) []match {
	var matches []match

	for _, loc := range hexRunRegex.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if !isHexColor(text, start, end) {
			continue
		}
		matches = append(matches, match{text: text[start:end], start: start, end: end})
	}

	for _, loc := range colorFuncRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, match{text: text[loc[0]:loc[1]], start: loc[0], end: loc[1]})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})
	return matches
}

// isHexColor checks a '#'-prefixed hex run: 3, 6 or 8 digits, not glued to an
// identifier on either side and not an HTML entity (&#123;).
func isHexColor(text string, start, end int) bool {
	switch end - start - 1 {
	case 3, 6, 8:
	default:
		return false
	}
	if start > 0 {
		prev := text[start-1]
		if prev == '&' || isWordByte(prev) {
			return false
		}
	}
	if end < len(text) {
		next := text[end]
		if next == '-' || isWordByte(next) {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// findVarInStyle returns each .style.<prop> = "...var(--x)..." assignment.
func findVarInStyle(text string) []match {
	var matches []match
	for _, loc := range varInStyleRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, match{text: text[loc[0]:loc[1]], start: loc[0], end: loc[1]})
	}
	return matches
}

// findVarInString returns each var(--x) inside a quoted string, skipping
// strings that sit inside one of the covered spans.
func findVarInString(text string, covered []match) []match {
	var matches []match
	for _, loc := range quotedStringRegex.FindAllStringIndex(text, -1) {
		if overlaps(loc[0], loc[1], covered) {
			continue
		}
		str := text[loc[0]:loc[1]]
		for _, ref := range varRefRegex.FindAllStringIndex(str, -1) {
			start := loc[0] + ref[0]
			end := loc[0] + ref[1]
			matches = append(matches, match{text: text[start:end], start: start, end: end})
		}
	}
	return matches
}

func overlaps(start, end int, spans []match) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// message builds the diagnostic text for a match.
func (r Rule) message(m match) string {
	switch r.Kind {
	case KindHardcodedColor:
		literal := m.text
		if strings.HasSuffix(literal, "(") {
			literal += "...)"
		}
		return fmt.Sprintf("hardcoded color %s at column %d; read it from a theme token, e.g. getToken('token-name', %s)",
			literal, m.column(), quoteFallback(literal))
	case KindVarInStyle:
		return fmt.Sprintf("theme variable assigned as a string to an inline style at column %d (%s); resolve the variable to a concrete value first",
			m.column(), m.text)
	case KindVarInString:
		return fmt.Sprintf("theme variable %s inside a string literal at column %d; resolve it through a theme accessor instead",
			m.text, m.column())
	default:
		return fmt.Sprintf("%s at column %d", m.text, m.column())
	}
}

func quoteFallback(literal string) string {
	return "'" + literal + "'"
}
