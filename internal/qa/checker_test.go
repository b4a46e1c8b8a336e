package qa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selfPrefix = "Cargill"

func findCheck(t *testing.T, report *Report, name string) Check {
	t.Helper()
	for _, check := range report.Checks {
		if strings.Contains(check.Name, name) {
			return check
		}
	}
	t.Fatalf("check %q not found", name)
	return Check{}
}

func memoWithExecutiveAnswer(words int) string {
	return fmt.Sprintf(`# Tax Memo

## Executive Answer

%s

## Issue Presented

Question?
`, strings.Repeat("word ", words))
}

func TestExecutiveAnswerWordBoundary(t *testing.T) {
	report := NewChecker(memoWithExecutiveAnswer(150), selfPrefix).Run()
	check := findCheck(t, report, "Executive Answer ≤150 words")
	assert.Equal(t, Pass, check.Result)
	assert.Equal(t, "150", check.Actual)

	report = NewChecker(memoWithExecutiveAnswer(151), selfPrefix).Run()
	check = findCheck(t, report, "Executive Answer ≤150 words")
	assert.Equal(t, Fail, check.Result)
}

func TestExecutiveAnswerMissingFails(t *testing.T) {
	report := NewChecker("# Memo\n\n## Facts\n\nSome facts\n", selfPrefix).Run()
	check := findCheck(t, report, "Executive Answer ≤150 words")
	assert.Equal(t, Fail, check.Result)
	assert.Contains(t, check.Details, "not found")
}

func TestSectionDetectionCaseInsensitive(t *testing.T) {
	checker := NewChecker("intro\n### executive answer\nbody\n", selfPrefix)
	found, line := checker.findSection("Executive Answer")
	assert.True(t, found)
	assert.Equal(t, 2, line)
}

func TestSectionDetectionBoldVariant(t *testing.T) {
	checker := NewChecker("**Facts** are below\n- one\n", selfPrefix)
	found, _ := checker.findSection("Facts")
	assert.True(t, found)
}

func TestExtractSectionStopsAtNextHeading(t *testing.T) {
	checker := NewChecker("## Facts\nline one\nline two\n## Analysis\nother\n", selfPrefix)
	assert.Equal(t, "line one\nline two", checker.extractSection("Facts"))
	assert.Equal(t, "", checker.extractSection("Conclusion"))
}

func TestMissingSectionsFail(t *testing.T) {
	report := NewChecker("# Incomplete Memo\n\n## Executive Answer\n\nTest\n\n## Facts\n\nSome facts\n", selfPrefix).Run()

	failed := 0
	for _, check := range report.Checks {
		if check.Category == "Structure" && check.Result == Fail {
			failed++
		}
	}
	assert.Positive(t, failed)
}

func TestRedTeamVariantAccepted(t *testing.T) {
	report := NewChecker("## Counter-Arguments\n1. one\n", selfPrefix).Run()
	check := findCheck(t, report, "Red-Team/Counter-Arguments")
	assert.Equal(t, Pass, check.Result)
}

func TestRedTeamCounterArgumentBoundary(t *testing.T) {
	memo := `## Red-Team

1. First counter-argument - Low likelihood
2. Second counter-argument - Medium likelihood
`
	report := NewChecker(memo, selfPrefix).Run()
	check := findCheck(t, report, "Red-Team has 3 counter-arguments")
	assert.Equal(t, Fail, check.Result)
	assert.Equal(t, "2", check.Actual)

	report = NewChecker(memo+"3. Third counter-argument - Low likelihood\n", selfPrefix).Run()
	check = findCheck(t, report, "Red-Team has 3 counter-arguments")
	assert.Equal(t, Pass, check.Result)
}

func TestRedTeamBulletsCounted(t *testing.T) {
	memo := "## Red-Team\n\n- one, high risk\n- two\n- three\n"
	report := NewChecker(memo, selfPrefix).Run()
	check := findCheck(t, report, "Red-Team has 3 counter-arguments")
	assert.Equal(t, Pass, check.Result)
}

func TestOpinionLevelDetection(t *testing.T) {
	memo := "## Conclusion\n\nOn balance, we assess **More likely than not** that the position holds.\n"
	report := NewChecker(memo, selfPrefix).Run()
	check := findCheck(t, report, "Opinion level stated")
	assert.Equal(t, Pass, check.Result)
	assert.Equal(t, "More likely than not", check.Actual)
}

func TestOpinionLevelMissing(t *testing.T) {
	report := NewChecker("## Conclusion\n\nWe think it works.\n", selfPrefix).Run()
	check := findCheck(t, report, "Opinion level stated")
	assert.Equal(t, Fail, check.Result)
}

func TestRiskShieldAlwaysWarning(t *testing.T) {
	report := NewChecker("## Risk & Penalty Shield\n\ndiscussion\n", selfPrefix).Run()
	check := findCheck(t, report, "Risk & Penalty Shield section appropriateness")
	assert.Equal(t, Warning, check.Result)

	report = NewChecker("## Conclusion\n\nfine\n", selfPrefix).Run()
	check = findCheck(t, report, "Risk & Penalty Shield section appropriateness")
	assert.Equal(t, Warning, check.Result)
}

func TestIRCSectionWordFails(t *testing.T) {
	report := NewChecker("See IRC Section 951A for details.\n# H\n", selfPrefix).Run()
	check := findCheck(t, report, "IRC uses § symbol")
	assert.Equal(t, Fail, check.Result)
}

func TestUnitalicizedCaseFails(t *testing.T) {
	report := NewChecker("# H\nSmith v. Jones controls here.\n", selfPrefix).Run()
	check := findCheck(t, report, "Case names italicized")
	assert.Equal(t, Fail, check.Result)
}

func TestItalicizedCasePasses(t *testing.T) {
	report := NewChecker("# H\n*Smith v. Jones* controls here.\n", selfPrefix).Run()
	check := findCheck(t, report, "Case names italicized")
	assert.Equal(t, Pass, check.Result)
}

func TestUnverifiedSentinelFailsQA(t *testing.T) {
	report := NewChecker("# H\nAuthority: Unknown—needs manual check\n", selfPrefix).Run()
	check := findCheck(t, report, "No unverified citations")
	assert.Equal(t, Fail, check.Result)
}

func TestSanitizationLeakDetected(t *testing.T) {
	report := NewChecker("# H\nWire $1,234,567.89 to Acme Trading LLC via bob@example.com\n", selfPrefix).Run()
	check := findCheck(t, report, "Facts appear sanitized")
	assert.Equal(t, Fail, check.Result)
	assert.Contains(t, check.Details, "email")
}

func TestSanitizationIgnoresSelfEntities(t *testing.T) {
	report := NewChecker("# H\nCargill Trading LLC is the requesting party.\n", selfPrefix).Run()
	check := findCheck(t, report, "Facts appear sanitized")
	assert.Equal(t, Pass, check.Result)
}

func TestAggregateConsistency(t *testing.T) {
	memo := `# Tax Memo

## Executive Answer

Brief answer in under 150 words.

## Issue Presented

Question?

## Facts

Facts here.

## Law & Authorities

IRC § 951A(c)(2).

## Analysis

Analysis here.

## Conclusion

We assess **Substantial authority** for this position.

## Red-Team

1. Counter-argument one - Low likelihood
2. Counter-argument two - Medium likelihood
3. Counter-argument three - Low likelihood

## Follow-Ups

None.

## Exhibits

Ex. A - Contract
`
	report := NewChecker(memo, selfPrefix).Run()

	assert.Positive(t, report.TotalChecks)
	assert.Positive(t, report.PassedChecks)
	assert.Equal(t, report.TotalChecks, report.PassedChecks+report.FailedChecks+report.Warnings)
	assert.Equal(t, report.FailedChecks == 0, report.Passed())
	assert.Equal(t, fmt.Sprintf("%d/%d", report.PassedChecks, report.TotalChecks), report.Score())
}

func TestRenderText(t *testing.T) {
	report := NewChecker(memoWithExecutiveAnswer(10), selfPrefix).Run()
	text := report.RenderText()

	assert.Contains(t, text, "QA REPORT: "+report.Score())
	assert.Contains(t, text, "STRUCTURE:")
	assert.Contains(t, text, "WORD COUNTS:")
	assert.Contains(t, text, fmt.Sprintf("Summary: %d passed, %d failed, %d warnings",
		report.PassedChecks, report.FailedChecks, report.Warnings))
}

func TestOutcomeJSON(t *testing.T) {
	pass, _ := Pass.MarshalJSON()
	fail, _ := Fail.MarshalJSON()
	warn, _ := Warning.MarshalJSON()
	assert.Equal(t, "true", string(pass))
	assert.Equal(t, "false", string(fail))
	assert.Equal(t, "null", string(warn))

	var o Outcome
	require.NoError(t, o.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Warning, o)
	assert.Error(t, o.UnmarshalJSON([]byte(`"maybe"`)))
}
