package qa

import (
	"fmt"
	"strings"
)

// Check is one checklist item's result.
type Check struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Result   Outcome `json:"passed"`
	Details  string  `json:"details,omitempty"`
	Expected string  `json:"expected,omitempty"`
	Actual   string  `json:"actual,omitempty"`
	Line     int     `json:"line,omitempty"`
}

// Report aggregates an ordered checklist run. Counts are always
// recomputed from Checks so they cannot drift.
type Report struct {
	TotalChecks  int     `json:"total_checks"`
	PassedChecks int     `json:"passed_checks"`
	FailedChecks int     `json:"failed_checks"`
	Warnings     int     `json:"warnings"`
	Checks       []Check `json:"checks"`
}

// Score renders "passed/total".
func (r *Report) Score() string {
	return fmt.Sprintf("%d/%d", r.PassedChecks, r.TotalChecks)
}

// Passed is true when no check failed; warnings do not block passing.
func (r *Report) Passed() bool {
	return r.FailedChecks == 0
}

func (r *Report) recount() {
	r.TotalChecks = len(r.Checks)
	r.PassedChecks, r.FailedChecks, r.Warnings = 0, 0, 0
	for _, check := range r.Checks {
		switch check.Result {
		case Pass:
			r.PassedChecks++
		case Fail:
			r.FailedChecks++
		default:
			r.Warnings++
		}
	}
}

// RenderText formats a report for terminal output, grouped by category
// in first-seen order.
func (r *Report) RenderText() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "QA REPORT: %s\n", r.Score())
	status := "✗ FAILED"
	if r.Passed() {
		status = "✓ PASSED"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	b.WriteString(rule + "\n")

	var order []string
	grouped := make(map[string][]Check)
	for _, check := range r.Checks {
		if _, seen := grouped[check.Category]; !seen {
			order = append(order, check.Category)
		}
		grouped[check.Category] = append(grouped[check.Category], check)
	}

	for _, category := range order {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(category))
		b.WriteString(strings.Repeat("-", 60) + "\n")

		for _, check := range grouped[category] {
			marker := "⚠"
			switch check.Result {
			case Pass:
				marker = "✓"
			case Fail:
				marker = "✗"
			}
			fmt.Fprintf(&b, "  %s %s\n", marker, check.Name)
			if check.Details != "" {
				fmt.Fprintf(&b, "      %s\n", check.Details)
			}
			if check.Expected != "" && check.Actual != "" {
				fmt.Fprintf(&b, "      Expected: %s, Actual: %s\n", check.Expected, check.Actual)
			}
		}
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "Summary: %d passed, %d failed, %d warnings\n", r.PassedChecks, r.FailedChecks, r.Warnings)
	b.WriteString(rule + "\n")

	return b.String()
}
