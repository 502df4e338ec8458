// Package lint finds hardcoded colors and theme-variable misuse in widget sources.
package lint

import (
	"fmt"

	"go.uber.org/zap"

	"cmdr/scripts/check-style-tokens/locator"
	"cmdr/scripts/check-style-tokens/scanner"
)

// Linter runs the rule set over a workspace. It holds no per-run state.
type Linter struct {
	rules      []Rule
	classifier *Classifier
	log        *zap.SugaredLogger
}

// New creates a Linter using the given accessor names for the context check.
func New(accessors []string, log *zap.SugaredLogger) (*Linter, error) {
	classifier, err := NewClassifier(accessors)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Linter{
		rules:      AllRules,
		classifier: classifier,
		log:        log,
	}, nil
}

// Run locates files, scans them line by line and collects violations.
// The first I/O error aborts the run; a partial result is never returned.
func (l *Linter) Run(ws *locator.Workspace, patterns []string) (*Result, error) {
	files, err := ws.Locate(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to locate files: %w", err)
	}
	l.log.Debugw("located files", "root", ws.Root, "count", len(files))

	result := &Result{Root: ws.Root}
	for _, file := range files {
		before := len(result.Violations)

		err := scanner.Scan(ws.FS, file, func(line scanner.Line) error {
			result.Violations = append(result.Violations, l.CheckLine(line)...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file.Path)

		if l.log.Desugar().Core().Enabled(zap.DebugLevel) {
			lines, err := scanner.CountLines(ws.FS, file)
			if err != nil {
				return nil, err
			}
			l.log.Debugw("scanned file", "path", file.RelPath, "lines", lines,
				"violations", len(result.Violations)-before)
		}
	}

	return result, nil
}

// CheckLine evaluates every rule against one line, in rule order.
func (l *Linter) CheckLine(line scanner.Line) []Violation {
	var violations []Violation
	for _, rule := range l.rules {
		violations = append(violations, l.evaluate(rule, line)...)
	}
	return violations
}

// evaluate is the single dispatch point over rule kinds.
func (l *Linter) evaluate(rule Rule, line scanner.Line) []Violation {
	var matches []match
	switch rule.Kind {
	case KindHardcodedColor:
		matches = findColorLiterals(line.Text)
	case KindVarInStyle:
		matches = findVarInStyle(line.Text)
	case KindVarInString:
		matches = findVarInString(line.Text, findVarInStyle(line.Text))
	default:
		return nil
	}

	var violations []Violation
	for _, m := range matches {
		if rule.Policy == PolicyRequiresContextCheck && l.classifier.IsAccessorFallback(line.Text, m.start) {
			continue
		}
		violations = append(violations, Violation{
			Path:    line.Path,
			RelPath: line.RelPath,
			Line:    line.Number,
			Column:  m.column(),
			RuleID:  rule.ID,
			Match:   m.text,
			Message: rule.message(m),
		})
	}
	return violations
}
