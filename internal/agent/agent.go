// Package agent orchestrates the tax research workflow: planning,
// memo drafting and LLM-assisted review on top of the rule-based
// validators.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quarterdeck/taxdesk/internal/common"
	"github.com/quarterdeck/taxdesk/internal/llm"
)

// StructureReview is the model's judgment on whether a memo follows
// house style. When the model's answer cannot be parsed as JSON,
// ParseError and RawResponse are populated instead.
type StructureReview struct {
	AllSectionsPresent       bool     `json:"all_sections_present"`
	MissingSections          []string `json:"missing_sections"`
	ExecutiveAnswerWordCount int      `json:"executive_answer_word_count"`
	ExecutiveAnswerOK        bool     `json:"executive_answer_ok"`
	OpinionLevelStated       bool     `json:"opinion_level_stated"`
	OpinionLevel             string   `json:"opinion_level"`
	RedTeamCounterArgs       int      `json:"red_team_counter_args"`
	Issues                   []string `json:"issues"`
	OverallAssessment        string   `json:"overall_assessment"`

	ParseError  string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// CitationFinding is a single problem the model found with a citation.
type CitationFinding struct {
	Citation string `json:"citation"`
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
}

// CitationReview is the model's substantive review of a memo's citations.
type CitationReview struct {
	TotalCitations int               `json:"total_citations"`
	Issues         []CitationFinding `json:"issues"`
	OverallQuality string            `json:"overall_quality"`

	ParseError  string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// Options carries overrides for the agent's system prompts.
type Options struct {
	// ResearchPrompt replaces the default drafting system prompt.
	ResearchPrompt string
	// CitationPrompt replaces the default citation review system prompt.
	CitationPrompt string
}

// Agent drives research-plan generation, memo drafting and review
// through a configured LLM client.
type Agent struct {
	client         llm.Client
	log            *zap.Logger
	session        string
	researchPrompt string
	citationPrompt string
}

const defaultResearchPrompt = "You are an international tax expert drafting practitioner-grade tax memos."

const defaultCitationPrompt = `You are a tax citation expert. Review citations for:
1. Proper format (IRC §, Treas. Reg. §, Bluebook cases)
2. Pincites present
3. Public URLs included where applicable
4. No hallucinated citations
5. Primary sources cited before secondary
6. Treaties include article numbers

Flag any suspicious or improperly formatted citations.`

func New(client llm.Client, log *zap.Logger, opts Options) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Agent{
		client:         client,
		log:            log,
		session:        uuid.NewString(),
		researchPrompt: defaultResearchPrompt,
		citationPrompt: defaultCitationPrompt,
	}
	if opts.ResearchPrompt != "" {
		a.researchPrompt = opts.ResearchPrompt
	}
	if opts.CitationPrompt != "" {
		a.citationPrompt = opts.CitationPrompt
	}
	return a
}

// GenerateResearchPlan produces a markdown research plan for the matter.
// Facts must already be sanitized.
func (a *Agent) GenerateResearchPlan(ctx context.Context, question, facts string, jurisdictions []string) (string, error) {
	jur := "To be determined"
	if len(jurisdictions) > 0 {
		jur = strings.Join(jurisdictions, ", ")
	}

	prompt := fmt.Sprintf(`Generate a comprehensive research plan for this international tax matter.

## Question
%s

## Facts (Sanitized)
%s

## Jurisdictions
%s

Create a research plan following the house research plan template. Include:

1. Matter snapshot (question, jurisdictions, time period)
2. Essential facts (3-10 bullets)
3. Issues & sub-issues with hypotheses
4. Authorities to consult:
   - U.S. primary (IRC sections, regulations, IRS guidance, cases)
   - OECD / Pillar Two guidance
   - Treaties & Technical Explanations
   - Local law
   - Secondary sources (labeled)
5. Search strategy with specific search strings
6. Expected deliverables & exhibits
7. Assumptions, unknowns, data requests
8. Risk forecasters (tentative opinion levels)

Format as markdown with clear sections. Be specific about IRC sections, regulation citations, and OECD guidance to review.`,
		question, facts, jur)

	a.log.Info("generating research plan",
		zap.String("session", a.session),
		zap.Int("jurisdictions", len(jurisdictions)))

	plan, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("research plan generation failed: %w", err)
	}
	return plan, nil
}

// DraftMemo generates a complete memo draft from an approved research
// plan and sanitized facts. additionalContext may be empty.
func (a *Agent) DraftMemo(ctx context.Context, researchPlan, sanitizedFacts, additionalContext string) (string, error) {
	extra := ""
	if additionalContext != "" {
		extra = "\n\nAdditional Context:\n" + additionalContext
	}

	prompt := fmt.Sprintf(`Draft a comprehensive international tax memo following house style.

## Research Plan
%s

## Sanitized Facts
%s
%s

Create a complete memo with ALL required sections:
1. Executive Answer (≤150 words, bottom line first)
2. Issue Presented (as a question)
3. Facts (sanitized bullets)
4. Law & Authorities (primary sources with pincites)
5. Analysis (apply law to facts, address counterpoints)
6. Conclusion (firm, with opinion level)
7. Red-Team (3 counter-arguments with authority and likelihood)
8. Risk & Penalty Shield (only if risk > Medium)
9. Follow-Ups & Assumptions
10. Exhibits / Evidence List

Requirements:
- Use actual IRC sections, regulations, and authorities from research plan
- Include proper citations with pincites
- State opinion level (Reasonable authority / Substantial authority / MLTN / Should)
- Professional tone, active voice, concise
- Mark any uncertain citations as "Unknown—needs manual check"

Return the complete memo in markdown format.`,
		researchPlan, sanitizedFacts, extra)

	a.log.Info("drafting memo", zap.String("session", a.session))

	memo, err := a.client.GenerateWithSystem(ctx, a.researchPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("memo drafting failed: %w", err)
	}
	return memo, nil
}

// ValidateMemoStructure asks the model to check a memo against house
// style. A transport failure returns an error; a response the model
// mangled still returns a review with ParseError set.
func (a *Agent) ValidateMemoStructure(ctx context.Context, memo string) (*StructureReview, error) {
	prompt := fmt.Sprintf(`Review this tax memo draft and verify it follows house style requirements.

Check for ALL required sections:
1. Executive Answer (≤150 words)
2. Issue Presented (framed as question)
3. Facts (Sanitized)
4. Law & Authorities (with pincites)
5. Analysis (apply law to facts)
6. Conclusion (firm, mirrored to issue)
7. Red-Team (3 counter-arguments with authorities and likelihoods)
8. Risk & Penalty Shield (only if risk > Medium)
9. Follow-Ups & Assumptions
10. Exhibits / Evidence List

Also check:
- Executive Answer word count
- Opinion level stated (Reasonable authority / Substantial authority / More likely than not / Should)
- Citations include pincites
- Red-Team has 3 counter-arguments with likelihood ratings
- Professional tone, active voice

Memo:
%s

Return detailed JSON with:
{
  "all_sections_present": true/false,
  "missing_sections": [],
  "executive_answer_word_count": X,
  "executive_answer_ok": true/false,
  "opinion_level_stated": true/false,
  "opinion_level": "...",
  "red_team_counter_args": X,
  "issues": ["list of specific issues"],
  "overall_assessment": "..."
}`, memo)

	resp, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("structure validation failed: %w", err)
	}

	review, err := common.ParseJSON[StructureReview](resp)
	if err != nil {
		a.log.Warn("unparseable structure review", zap.Error(err))
		return &StructureReview{
			ParseError:  "could not parse validation results",
			RawResponse: resp,
		}, nil
	}
	return &review, nil
}

// ReviewCitations asks the model for a substantive citation review,
// beyond what the rule-based validator can see.
func (a *Agent) ReviewCitations(ctx context.Context, memo string) (*CitationReview, error) {
	prompt := fmt.Sprintf(`Review all citations in this tax memo:

%s

Identify:
1. Improperly formatted citations
2. Missing pincites
3. Missing I.R.B. citations for Notices/Rev. Ruls.
4. Cases without Bluebook format
5. Any citations that seem fabricated or questionable
6. URLs without date accessed

Return JSON:
{
  "total_citations": X,
  "issues": [
    {
      "citation": "...",
      "issue": "...",
      "severity": "high|medium|low"
    }
  ],
  "overall_quality": "excellent|good|needs_work|poor"
}`, memo)

	resp, err := a.client.GenerateWithSystem(ctx, a.citationPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("citation review failed: %w", err)
	}

	review, err := common.ParseJSON[CitationReview](resp)
	if err != nil {
		a.log.Warn("unparseable citation review", zap.Error(err))
		return &CitationReview{
			ParseError:  "could not parse citation review",
			RawResponse: resp,
		}, nil
	}
	return &review, nil
}

// SuggestImprovements turns a QA report into actionable edits for the
// memo author. Long memos are truncated to keep the prompt bounded.
func (a *Agent) SuggestImprovements(ctx context.Context, memo, qaReport string) (string, error) {
	excerpt := memo
	if len(memo) > 5000 {
		excerpt = memo[:5000] + "... [truncated]"
	}

	prompt := fmt.Sprintf(`Review this tax memo and QA report, then suggest specific improvements.

## QA Report
%s

## Memo
%s

Based on the failed QA checks, provide:
1. Specific sections that need work
2. Citation formatting fixes needed
3. Missing required elements
4. Structural improvements

Format as a numbered list of actionable items.`, qaReport, excerpt)

	suggestions, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("improvement suggestions failed: %w", err)
	}
	return suggestions, nil
}
