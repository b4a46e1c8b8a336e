package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (m *mockClient) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateWithSystem(ctx, "", prompt)
}

func (m *mockClient) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	m.lastSystem = system
	m.lastPrompt = prompt
	return m.response, m.err
}

func TestGenerateResearchPlan(t *testing.T) {
	mock := &mockClient{response: "# Research Plan\n\n## Matter Snapshot\n..."}
	a := New(mock, nil, Options{})

	plan, err := a.GenerateResearchPlan(context.Background(),
		"Does GILTI apply to the CFC's Swiss branch income?",
		"[Cargill Entity A] owns [Third Party Entity B].",
		[]string{"US", "Switzerland"})
	require.NoError(t, err)
	assert.Contains(t, plan, "Research Plan")
	assert.Contains(t, mock.lastPrompt, "US, Switzerland")
	assert.Contains(t, mock.lastPrompt, "[Cargill Entity A]")
}

func TestGenerateResearchPlanDefaultJurisdictions(t *testing.T) {
	mock := &mockClient{response: "plan"}
	a := New(mock, nil, Options{})

	_, err := a.GenerateResearchPlan(context.Background(), "q", "facts", nil)
	require.NoError(t, err)
	assert.Contains(t, mock.lastPrompt, "To be determined")
}

func TestDraftMemoUsesSystemPrompt(t *testing.T) {
	mock := &mockClient{response: "# Memo"}
	a := New(mock, nil, Options{ResearchPrompt: "custom drafting instructions"})

	_, err := a.DraftMemo(context.Background(), "plan", "facts", "extra notes")
	require.NoError(t, err)
	assert.Equal(t, "custom drafting instructions", mock.lastSystem)
	assert.Contains(t, mock.lastPrompt, "Additional Context:\nextra notes")
}

func TestDraftMemoOmitsEmptyContext(t *testing.T) {
	mock := &mockClient{response: "# Memo"}
	a := New(mock, nil, Options{})

	_, err := a.DraftMemo(context.Background(), "plan", "facts", "")
	require.NoError(t, err)
	assert.NotContains(t, mock.lastPrompt, "Additional Context")
}

func TestValidateMemoStructureParsesJSON(t *testing.T) {
	mock := &mockClient{response: "```json\n" + `{
		"all_sections_present": false,
		"missing_sections": ["Red-Team"],
		"executive_answer_word_count": 120,
		"executive_answer_ok": true,
		"opinion_level_stated": true,
		"opinion_level": "Should",
		"red_team_counter_args": 0,
		"issues": ["Red-Team section missing"],
		"overall_assessment": "needs work"
	}` + "\n```"}
	a := New(mock, nil, Options{})

	review, err := a.ValidateMemoStructure(context.Background(), "# Memo")
	require.NoError(t, err)
	assert.False(t, review.AllSectionsPresent)
	assert.Equal(t, []string{"Red-Team"}, review.MissingSections)
	assert.Equal(t, 120, review.ExecutiveAnswerWordCount)
	assert.Equal(t, "Should", review.OpinionLevel)
	assert.Empty(t, review.ParseError)
}

func TestValidateMemoStructureUnparseable(t *testing.T) {
	mock := &mockClient{response: "I cannot review this memo."}
	a := New(mock, nil, Options{})

	review, err := a.ValidateMemoStructure(context.Background(), "# Memo")
	require.NoError(t, err)
	assert.NotEmpty(t, review.ParseError)
	assert.Equal(t, "I cannot review this memo.", review.RawResponse)
}

func TestValidateMemoStructureTransportError(t *testing.T) {
	mock := &mockClient{err: errors.New("connection refused")}
	a := New(mock, nil, Options{})

	_, err := a.ValidateMemoStructure(context.Background(), "# Memo")
	assert.Error(t, err)
}

func TestReviewCitations(t *testing.T) {
	mock := &mockClient{response: `{
		"total_citations": 7,
		"issues": [
			{"citation": "IRC Section 951A", "issue": "use section symbol", "severity": "medium"}
		],
		"overall_quality": "good"
	}`}
	a := New(mock, nil, Options{})

	review, err := a.ReviewCitations(context.Background(), "# Memo")
	require.NoError(t, err)
	assert.Equal(t, 7, review.TotalCitations)
	require.Len(t, review.Issues, 1)
	assert.Equal(t, "medium", review.Issues[0].Severity)
	assert.Equal(t, defaultCitationPrompt, mock.lastSystem)
}

func TestSuggestImprovementsTruncatesMemo(t *testing.T) {
	mock := &mockClient{response: "1. Fix the Executive Answer."}
	a := New(mock, nil, Options{})

	long := strings.Repeat("x", 6000)
	_, err := a.SuggestImprovements(context.Background(), long, "report")
	require.NoError(t, err)
	assert.Contains(t, mock.lastPrompt, "... [truncated]")
	assert.Less(t, len(mock.lastPrompt), 6000)
}
