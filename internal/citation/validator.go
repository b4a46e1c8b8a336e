// Package citation validates citation formats for IRC sections, Treasury
// Regulations, cases, IRS guidance, treaties and OECD materials against
// the house style. Checks are purely syntactic; whether a citation
// actually exists is the guidance-lookup layer's problem.
package citation

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue types.
const (
	IssueFormat       = "format"
	IssueVerification = "verification"
)

// UnverifiedSentinel marks a citation the drafting stage could not confirm.
const UnverifiedSentinel = "Unknown—needs manual check"

// Issue is one citation formatting or verification finding.
type Issue struct {
	Citation string `json:"citation"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

var (
	regAnchored    = regexp.MustCompile(`^` + regPattern.String())
	noticeAnchored = regexp.MustCompile(`^` + noticePattern.String())
	revRulAnchored = regexp.MustCompile(`^` + revRulPattern.String())
)

// ValidateAll runs every category validator over text. The returned
// issue list preserves validator order.
func ValidateAll(text string) (bool, []Issue) {
	var issues []Issue
	issues = append(issues, ValidateIRC(text)...)
	issues = append(issues, ValidateRegulations(text)...)
	issues = append(issues, ValidateCases(text)...)
	issues = append(issues, ValidateIRBGuidance(text)...)
	issues = append(issues, ValidateGeneralFormat(text)...)
	return len(issues) == 0, issues
}

// ValidateIRC flags IRC citations that spell out "Section" or omit the
// § symbol.
func ValidateIRC(text string) []Issue {
	var issues []Issue

	if ircSectionWordPattern.MatchString(text) {
		issues = append(issues, Issue{
			Citation: "IRC Section X",
			Type:     IssueFormat,
			Message:  "Use 'IRC §' not 'IRC Section'",
		})
	}

	// RE2 has no lookahead, so "IRC <number> not followed by §" is a
	// match-then-inspect scan.
	for _, loc := range bareIRCPattern.FindAllStringIndex(text, -1) {
		rest := strings.TrimLeft(text[loc[1]:], " \t")
		if strings.HasPrefix(rest, "§") {
			continue
		}
		issues = append(issues, Issue{
			Citation: text[loc[0]:loc[1]],
			Type:     IssueFormat,
			Message:  "Missing § symbol",
		})
	}

	return issues
}

// ValidateRegulations checks every Treasury Regulation reference against
// the full house shape.
func ValidateRegulations(text string) []Issue {
	var issues []Issue

	for _, reg := range looseRegPattern.FindAllString(text, -1) {
		if regAnchored.MatchString(reg) {
			continue
		}
		issues = append(issues, Issue{
			Citation: reg,
			Type:     IssueFormat,
			Message:  "Should be 'Treas. Reg. § X.XXX-X(x)(x)'",
		})
	}

	return issues
}

// ValidateCases checks italicized case references for a reporter
// citation and a court/year parenthetical.
func ValidateCases(text string) []Issue {
	var issues []Issue

	for _, span := range italicSpanPattern.FindAllString(text, -1) {
		if !strings.Contains(strings.ToLower(span), "v.") {
			continue
		}

		if !reporterPattern.MatchString(span) {
			issues = append(issues, Issue{
				Citation: truncate(span, 100),
				Type:     IssueFormat,
				Message:  "Missing reporter citation (e.g., '123 F.3d 456')",
			})
		}

		if !courtYearPattern.MatchString(span) {
			issues = append(issues, Issue{
				Citation: truncate(span, 100),
				Type:     IssueFormat,
				Message:  "Missing court and year, e.g., (Fed. Cir. 2010)",
			})
		}
	}

	return issues
}

// ValidateIRBGuidance requires Notices and Revenue Rulings to carry the
// trailing I.R.B. citation.
func ValidateIRBGuidance(text string) []Issue {
	var issues []Issue

	for _, loc := range noticeNumberPattern.FindAllStringIndex(text, -1) {
		if noticeAnchored.MatchString(text[loc[0]:]) {
			continue
		}
		issues = append(issues, Issue{
			Citation: text[loc[0]:loc[1]],
			Type:     IssueFormat,
			Message:  "Should include I.R.B. citation, e.g., 'Notice 2020-69, 2020-40 I.R.B. 600'",
		})
	}

	for _, loc := range revRulNumberPattern.FindAllStringIndex(text, -1) {
		if revRulAnchored.MatchString(text[loc[0]:]) {
			continue
		}
		issues = append(issues, Issue{
			Citation: text[loc[0]:loc[1]],
			Type:     IssueFormat,
			Message:  "Should include I.R.B. citation",
		})
	}

	return issues
}

// ValidateGeneralFormat flags the unverified-citation sentinel and bare
// URLs with no access date within the trailing window.
func ValidateGeneralFormat(text string) []Issue {
	var issues []Issue

	if strings.Contains(text, UnverifiedSentinel) {
		issues = append(issues, Issue{
			Type:    IssueVerification,
			Message: "Document contains unverified citations marked '" + UnverifiedSentinel + "'",
		})
	}

	for _, url := range urlPattern.FindAllString(text, -1) {
		pos := strings.Index(text, url)
		window := text[pos:min(pos+100, len(text))]
		lower := strings.ToLower(window)
		if strings.Contains(lower, "accessed") || strings.Contains(lower, "retrieved") {
			continue
		}
		issues = append(issues, Issue{
			Citation: url,
			Type:     IssueFormat,
			Message:  "Web citations should include date accessed",
		})
	}

	return issues
}

// Summary counts citations per category.
func Summary(text string) map[string]int {
	counts := make(map[string]int, len(summaryEntries))
	for _, entry := range summaryEntries {
		counts[entry.key] = len(patternsByKind[entry.kind].FindAllString(text, -1))
	}
	return counts
}

// ValidateOne checks a single citation against one category's shape.
// An unrecognized kind is a caller error, not a negative result.
func ValidateOne(cite string, kind Kind) (bool, string, error) {
	pattern, ok := patternsByKind[kind]
	if !ok {
		return false, "", fmt.Errorf("unknown citation type: %s", kind)
	}

	anchored := regexp.MustCompile(`^` + pattern.String())
	if anchored.MatchString(strings.TrimSpace(cite)) {
		return true, "Valid format", nil
	}
	return false, fmt.Sprintf("Does not match %s format", kind), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
