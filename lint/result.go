package lint

import "fmt"

// Violation is one reported rule match.
type Violation struct {
	Path    string `json:"path" yaml:"path"`
	RelPath string `json:"rel_path" yaml:"rel_path"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	RuleID  string `json:"rule_id" yaml:"rule_id"`
	Match   string `json:"match" yaml:"match"`
	Message string `json:"message" yaml:"message"`
}

// String formats the violation as a diagnostic line: "path:line  rule-id  message".
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d  %s  %s", v.RelPath, v.Line, v.RuleID, v.Message)
}

// Result is the outcome of one lint run. Violations are in discovery order:
// files in locator order, then lines, then rules.
type Result struct {
	Root       string
	Files      []string
	Violations []Violation
}

// HasViolations returns true if anything was reported.
func (r *Result) HasViolations() bool {
	return len(r.Violations) > 0
}

// Count returns the number of violations.
func (r *Result) Count() int {
	return len(r.Violations)
}

// ExitCode maps the result to the process exit status.
func (r *Result) ExitCode() int {
	if r.HasViolations() {
		return 1
	}
	return 0
}

// CountByRule returns the number of violations per rule ID.
func (r *Result) CountByRule() map[string]int {
	counts := make(map[string]int)
	for _, v := range r.Violations {
		counts[v.RuleID]++
	}
	return counts
}
