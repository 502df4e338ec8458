// Package report renders lint results.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"cmdr/scripts/check-style-tokens/config"
	"cmdr/scripts/check-style-tokens/lint"
)

// Reporter writes a Result in one format. It never filters, merges or
// reorders violations.
type Reporter struct {
	writer io.Writer
	format string
	styles styles
}

type styles struct {
	location lipgloss.Style
	rule     lipgloss.Style
	summary  lipgloss.Style
}

// New creates a Reporter. color only affects the text format.
func New(writer io.Writer, format string, color bool) *Reporter {
	renderer := lipgloss.NewRenderer(writer)
	if color {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		writer: writer,
		format: format,
		styles: styles{
			location: renderer.NewStyle().Bold(true),
			rule:     renderer.NewStyle().Foreground(lipgloss.Color("3")),
			summary:  renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// Report writes result in the configured format.
func (r *Reporter) Report(result *lint.Result) error {
	switch r.format {
	case config.FormatText, "":
		return r.reportText(result)
	case config.FormatJSON:
		return r.reportJSON(result)
	case config.FormatSARIF:
		return r.reportSARIF(result)
	case config.FormatYAML:
		return r.reportYAML(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportText prints "path:line  rule-id  message" per violation, a blank line
// and the total. Nothing at all is printed for a clean result.
func (r *Reporter) reportText(result *lint.Result) error {
	if !result.HasViolations() {
		return nil
	}

	for _, v := range result.Violations {
		location := fmt.Sprintf("%s:%d", v.RelPath, v.Line)
		if _, err := fmt.Fprintf(r.writer, "%s  %s  %s\n",
			r.styles.location.Render(location), r.styles.rule.Render(v.RuleID), v.Message); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
	}

	if _, err := fmt.Fprintf(r.writer, "\n%s\n", r.styles.summary.Render(Summary(result))); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}
	return nil
}

// Summary returns the trailing count line.
func Summary(result *lint.Result) string {
	return fmt.Sprintf("%d violation(s) found.", result.Count())
}

type jsonReport struct {
	Root         string           `json:"root" yaml:"root"`
	FilesScanned int              `json:"files_scanned" yaml:"files_scanned"`
	Count        int              `json:"count" yaml:"count"`
	Violations   []lint.Violation `json:"violations" yaml:"violations"`
}

func newJSONReport(result *lint.Result) jsonReport {
	violations := result.Violations
	if violations == nil {
		violations = []lint.Violation{}
	}
	return jsonReport{
		Root:         result.Root,
		FilesScanned: len(result.Files),
		Count:        result.Count(),
		Violations:   violations,
	}
}

func (r *Reporter) reportJSON(result *lint.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newJSONReport(result)); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (r *Reporter) reportYAML(result *lint.Result) error {
	encoder := yaml.NewEncoder(r.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(newJSONReport(result)); err != nil {
		return fmt.Errorf("failed to encode YAML output: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML output: %w", err)
	}
	return nil
}
