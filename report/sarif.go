package report

import (
	"fmt"

	"github.com/goccy/go-json"

	"cmdr/scripts/check-style-tokens/lint"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName     = "check-style-tokens"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// reportSARIF writes a SARIF 2.1.0 log with the full rule catalog and one
// result per violation.
func (r *Reporter) reportSARIF(result *lint.Result) error {
	rules := make([]sarifRule, 0, len(lint.AllRules))
	for _, rule := range lint.AllRules {
		rules = append(rules, sarifRule{
			ID:               rule.ID,
			ShortDescription: sarifMessage{Text: rule.Description},
		})
	}

	results := make([]sarifResult, 0, len(result.Violations))
	for _, v := range result.Violations {
		results = append(results, sarifResult{
			RuleID:  v.RuleID,
			Level:   "error",
			Message: sarifMessage{Text: v.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifact{URI: v.RelPath},
					Region:           sarifRegion{StartLine: v.Line, StartColumn: v.Column},
				},
			}},
		})
	}

	log := sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: toolName, Rules: rules}},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("failed to encode SARIF output: %w", err)
	}
	return nil
}
