// Package qa runs the automated house-style checklist over a drafted
// memo: structure, citations, formatting, word counts, risk assessment
// and a defense-in-depth sanitization scan.
package qa

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quarterdeck/taxdesk/internal/citation"
)

// Opinion levels in priority order; the first one found in the memo is
// reported.
var opinionLevels = []string{
	"Reasonable authority",
	"Substantial authority",
	"More likely than not",
	"Should",
}

var coreSections = []string{
	"Executive Answer",
	"Issue Presented",
	"Facts",
	"Analysis",
	"Conclusion",
}

var (
	pinciteCitePattern    = regexp.MustCompile(`(?:IRC\s*§|Treas\.\s*Reg\.\s*§|Art\.)\s*[\d.]+[A-Z]?`)
	caseRefPattern        = regexp.MustCompile(`\*[^*\n]+\*[^\n]*?\d+\s+[A-Z][A-Za-z.]*\s+\d+`)
	shepardizePattern     = regexp.MustCompile(`shepard|bcite|cite check`)
	ircSectionWordPattern = regexp.MustCompile(`(?i)\bIRC\s+Section\s+\d+`)
	vCasePattern          = regexp.MustCompile(`\b\w+\s+v\.\s+\w+\b`)
	numberedItemPattern   = regexp.MustCompile(`(?m)^\s*\d+\.`)
	bulletItemPattern     = regexp.MustCompile(`(?m)^\s*[-*]`)
	likelihoodPattern     = regexp.MustCompile(`(?i)\b(?:low|medium|med|high)\b`)
	emailLeakPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	amountLeakPattern     = regexp.MustCompile(`\$\d+,\d{3},\d{3}\.\d{2}`)
	entityLeakPattern     = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:LLC|Inc\.|Corp\.)`)
)

// Checker runs the fixed checklist battery over one memo. Single use.
type Checker struct {
	memo       string
	memoLower  string
	lines      []string
	selfPrefix string
	checks     []Check
}

// NewChecker prepares a checklist run. selfPrefix is the organization's
// own identifier; entity names carrying it are not treated as leaks.
func NewChecker(memo, selfPrefix string) *Checker {
	return &Checker{
		memo:       memo,
		memoLower:  strings.ToLower(memo),
		lines:      strings.Split(memo, "\n"),
		selfPrefix: selfPrefix,
	}
}

// Run executes every check group in fixed order and returns the
// aggregated report.
func (c *Checker) Run() *Report {
	c.checkStructure()
	c.checkCitations()
	c.checkFormatting()
	c.checkWordCounts()
	c.checkRiskAssessment()
	c.checkSanitization()

	report := &Report{Checks: c.checks}
	report.recount()
	return report
}

func (c *Checker) add(check Check) {
	c.checks = append(c.checks, check)
}

func (c *Checker) checkStructure() {
	for _, section := range coreSections {
		found, line := c.findSection(section)
		details := "Section not found"
		if found {
			details = fmt.Sprintf("Found at line %d", line)
		}
		c.add(Check{
			Category: "Structure",
			Name:     "Section: " + section,
			Result:   outcomeOf(found),
			Details:  details,
			Line:     line,
		})
	}

	redTeamFound := false
	for _, variant := range []string{"Red-Team", "Red Team", "Counter-Arguments"} {
		if found, _ := c.findSection(variant); found {
			redTeamFound = true
			break
		}
	}
	c.add(Check{
		Category: "Structure",
		Name:     "Section: Red-Team/Counter-Arguments",
		Result:   outcomeOf(redTeamFound),
		Details:  foundOrMissing(redTeamFound),
	})

	exhibitsFound, _ := c.findSection("Exhibits")
	c.add(Check{
		Category: "Structure",
		Name:     "Section: Exhibits",
		Result:   outcomeOf(exhibitsFound),
		Details:  foundOrMissing(exhibitsFound),
	})
}

func (c *Checker) checkCitations() {
	valid, issues := citation.ValidateAll(c.memo)

	details := "All citations valid"
	if !valid {
		details = fmt.Sprintf("Found %d citation issues", len(issues))
	}
	c.add(Check{
		Category: "Citations",
		Name:     "All citations properly formatted",
		Result:   outcomeOf(valid),
		Details:  details,
	})

	// Pincite correctness needs a human; we only report the count.
	cites := pinciteCitePattern.FindAllString(c.memo, -1)
	c.add(Check{
		Category: "Citations",
		Name:     "Citations include pincites",
		Result:   Warning,
		Details:  fmt.Sprintf("Found %d citations - verify pincites manually", len(cites)),
		Actual:   fmt.Sprintf("%d", len(cites)),
	})

	hasUnknown := strings.Contains(c.memo, citation.UnverifiedSentinel)
	details = "All citations appear verified"
	if hasUnknown {
		details = "Found '" + citation.UnverifiedSentinel + "' flags"
	}
	c.add(Check{
		Category: "Citations",
		Name:     "No unverified citations",
		Result:   outcomeOf(!hasUnknown),
		Details:  details,
	})

	if cases := caseRefPattern.FindAllString(c.memo, -1); len(cases) > 0 {
		mention := "not mentioned"
		if shepardizePattern.MatchString(c.memoLower) {
			mention = "mentioned"
		}
		c.add(Check{
			Category: "Citations",
			Name:     "Case validation documented",
			Result:   Warning,
			Details:  fmt.Sprintf("Found %d cases - Shepardization %s", len(cases), mention),
			Actual:   fmt.Sprintf("%d", len(cases)),
		})
	}
}

func (c *Checker) checkFormatting() {
	badIRC := ircSectionWordPattern.FindAllString(c.memo, -1)
	details := "Correct"
	if len(badIRC) > 0 {
		details = fmt.Sprintf("Found %d instances of 'IRC Section X'", len(badIRC))
	}
	c.add(Check{
		Category: "Formatting",
		Name:     "IRC uses § symbol (not 'Section')",
		Result:   outcomeOf(len(badIRC) == 0),
		Details:  details,
	})

	if potentialCases := vCasePattern.FindAllString(c.memo, -1); len(potentialCases) > 0 {
		unitalicized := 0
		for _, name := range potentialCases {
			if !strings.Contains(c.memo, "*"+name+"*") {
				unitalicized++
			}
		}
		details = "Correct"
		if unitalicized > 0 {
			details = fmt.Sprintf("Found %d potentially unitalicized cases", unitalicized)
		}
		c.add(Check{
			Category: "Formatting",
			Name:     "Case names italicized",
			Result:   outcomeOf(unitalicized == 0),
			Details:  details,
		})
	}

	headings := 0
	for _, line := range c.lines {
		if strings.HasPrefix(line, "#") {
			headings++
		}
	}
	c.add(Check{
		Category: "Formatting",
		Name:     "Uses markdown headings",
		Result:   outcomeOf(headings > 0),
		Details:  fmt.Sprintf("Found %d headings", headings),
		Actual:   fmt.Sprintf("%d", headings),
	})
}

func (c *Checker) checkWordCounts() {
	if execAnswer := c.extractSection("Executive Answer"); execAnswer != "" {
		words := len(strings.Fields(execAnswer))
		c.add(Check{
			Category: "Word Counts",
			Name:     "Executive Answer ≤150 words",
			Result:   outcomeOf(words <= 150),
			Details:  fmt.Sprintf("%d words", words),
			Expected: "≤150",
			Actual:   fmt.Sprintf("%d", words),
		})
	} else {
		c.add(Check{
			Category: "Word Counts",
			Name:     "Executive Answer ≤150 words",
			Result:   Fail,
			Details:  "Executive Answer section not found",
		})
	}

	totalWords := len(strings.Fields(c.memo))
	c.add(Check{
		Category: "Word Counts",
		Name:     "Memo is substantial (>500 words)",
		Result:   outcomeOf(totalWords > 500),
		Details:  fmt.Sprintf("%d total words", totalWords),
		Actual:   fmt.Sprintf("%d", totalWords),
	})
}

func (c *Checker) checkRiskAssessment() {
	var opinionUsed string
	for _, level := range opinionLevels {
		if strings.Contains(c.memoLower, strings.ToLower(level)) {
			opinionUsed = level
			break
		}
	}
	details := "No opinion level found"
	actual := "None"
	if opinionUsed != "" {
		details = "Found: " + opinionUsed
		actual = opinionUsed
	}
	c.add(Check{
		Category: "Risk Assessment",
		Name:     "Opinion level stated",
		Result:   outcomeOf(opinionUsed != ""),
		Details:  details,
		Actual:   actual,
	})

	redTeam := c.extractSection("Red-Team")
	if redTeam == "" {
		redTeam = c.extractSection("Red Team")
	}
	if redTeam != "" {
		numbered := len(numberedItemPattern.FindAllString(redTeam, -1))
		bullets := len(bulletItemPattern.FindAllString(redTeam, -1))
		counterArgs := max(numbered, bullets)

		c.add(Check{
			Category: "Risk Assessment",
			Name:     "Red-Team has 3 counter-arguments",
			Result:   outcomeOf(counterArgs >= 3),
			Details:  fmt.Sprintf("Found %d counter-arguments", counterArgs),
			Expected: "3",
			Actual:   fmt.Sprintf("%d", counterArgs),
		})

		hasLikelihood := likelihoodPattern.MatchString(redTeam)
		details = "No likelihood assessments found"
		if hasLikelihood {
			details = "Likelihood assessments found"
		}
		c.add(Check{
			Category: "Risk Assessment",
			Name:     "Counter-arguments include likelihood",
			Result:   outcomeOf(hasLikelihood),
			Details:  details,
		})
	}

	// Whether the risk section belongs in this memo at all is a judgment
	// call, so this is always a warning.
	hasRiskSection := strings.Contains(c.memo, "Risk & Penalty Shield") ||
		strings.Contains(c.memo, "Risk and Penalty Shield")
	details = "No risk section - acceptable if risk ≤ Medium"
	if hasRiskSection {
		details = "Risk section present - verify only included if risk > Medium"
	}
	c.add(Check{
		Category: "Risk Assessment",
		Name:     "Risk & Penalty Shield section appropriateness",
		Result:   Warning,
		Details:  details,
	})
}

func (c *Checker) checkSanitization() {
	var warnings []string

	if emails := emailLeakPattern.FindAllString(c.memo, -1); len(emails) > 0 {
		warnings = append(warnings, fmt.Sprintf("Found %d email addresses", len(emails)))
	}

	if amounts := amountLeakPattern.FindAllString(c.memo, -1); len(amounts) > 0 {
		warnings = append(warnings, fmt.Sprintf("Found %d specific dollar amounts", len(amounts)))
	}

	entities := 0
	for _, name := range entityLeakPattern.FindAllString(c.memo, -1) {
		if c.selfPrefix != "" && strings.HasPrefix(name, c.selfPrefix) {
			continue
		}
		entities++
	}
	if entities > 0 {
		warnings = append(warnings, fmt.Sprintf("Found %d named entities (verify sanitized)", entities))
	}

	details := "Looks sanitized"
	if len(warnings) > 0 {
		details = strings.Join(warnings, "; ")
	}
	c.add(Check{
		Category: "Sanitization",
		Name:     "Facts appear sanitized",
		Result:   outcomeOf(len(warnings) == 0),
		Details:  details,
	})
}

func foundOrMissing(found bool) string {
	if found {
		return "Found"
	}
	return "Section not found"
}
