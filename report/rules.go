package report

import (
	"fmt"
	"io"

	"cmdr/scripts/check-style-tokens/lint"
)

// ListRules prints the rule catalog, one rule per line, in evaluation order.
func ListRules(w io.Writer) error {
	for _, rule := range lint.AllRules {
		if _, err := fmt.Fprintf(w, "%-18s %-23s %s\n", rule.ID, rule.Policy, rule.Description); err != nil {
			return fmt.Errorf("failed to write rule list: %w", err)
		}
	}
	return nil
}
