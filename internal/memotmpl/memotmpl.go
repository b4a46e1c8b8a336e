// Package memotmpl generates blank house-style memo and research plan
// documents for authors to fill in.
package memotmpl

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// MemoParams fill the blank memo template. Zero values get sensible
// defaults: today's date, an "[Author]" placeholder and the "Cargill"
// entity prefix.
type MemoParams struct {
	MatterTitle string
	Question    string
	Author      string
	Date        string
	SelfPrefix  string
}

// PlanParams fill the research plan template.
type PlanParams struct {
	MatterTitle string
	Question    string
	Date        string
}

var memoTemplate = template.Must(template.New("memo").Parse(`# International Tax Memo: {{.MatterTitle}}

**Date:** {{.Date}}
**Prepared by:** {{.Author}}
**Matter:** {{.MatterTitle}}

---

## Executive Answer

[Provide bottom-line answer in ≤150 words. State the conclusion first, then key supporting points. No citations unless critical.]

---

## Issue Presented

{{.Question}}

---

## Facts (Sanitized)

[Concise bullets of essential facts. Use placeholders for entities: [{{.SelfPrefix}} Entity A], [{{.SelfPrefix}} Entity B]. Redact confidential figures unless essential.]

-
-
-

---

## Law & Authorities

[Primary sources first, with pincites. List in logical order.]

### U.S. Statutes & Regulations

- IRC § [section]([subsection])
- Treas. Reg. § [regulation]

### IRS Guidance

- Notice [number], [IRB citation]
- Rev. Rul. [number], [IRB citation]

### Cases

- *[Case Name]*, [Reporter] [Page], [Pincite] ([Court] [Year])

### Treaties & Technical Explanations

- [Treaty name], Art. [number]

### OECD Guidance

- OECD Model Tax Convention, Art. [number], Commentary ¶[number]

### Secondary Sources (if applicable - label clearly)

- [Source] (secondary)

---

## Analysis

[Apply law to facts. Organize by sub-issue. Address counterpoints inline.]

### Sub-Issue 1: [Title]

[Analysis with citations]

### Sub-Issue 2: [Title]

[Analysis with citations]

---

## Conclusion

On balance, we assess **[Opinion Level]** that [restate conclusion].

Opinion levels:
- **Reasonable authority** (~20-30%): Non-frivolous basis in law
- **Substantial authority** (~35-45%): Substantial weight of authorities
- **More likely than not** (>50%): Likely to be sustained
- **Should** (~70-80%): High confidence

[2-3 sentences explaining why this level is appropriate based on authorities and facts]

---

## Red-Team (Counter-Arguments)

[Present 3 strongest counter-arguments, each with: (1) thesis, (2) authority cite, (3) likelihood (Low/Med/High), (4) mitigation]

### 1. [Counter-Argument Title]

**Thesis:** [Brief description]

**Authority:** [Citation]

**Likelihood:** [Low/Medium/High]

**Mitigation:** [How to address]

### 2. [Counter-Argument Title]

**Thesis:** [Brief description]

**Authority:** [Citation]

**Likelihood:** [Low/Medium/High]

**Mitigation:** [How to address]

### 3. [Counter-Argument Title]

**Thesis:** [Brief description]

**Authority:** [Citation]

**Likelihood:** [Low/Medium/High]

**Mitigation:** [How to address]

---

## Risk & Penalty Shield

[Include ONLY if overall risk > Medium]

[Discuss reasonable-cause defense, substantial authority standard, and documentation requirements. Reference contemporaneous records needed.]

---

## Follow-Ups & Assumptions

### Assumptions

1.
2.
3.

### Follow-Up Questions

1.
2.
3.

### Additional Data Needed

-
-

---

## Exhibits / Evidence List

- **Ex. A** — [Description]
- **Ex. B** — [Description]
- **Ex. C** — [Description]

---

## QA Checklist

- [ ] All required sections present
- [ ] Executive Answer ≤150 words
- [ ] Citations properly formatted with pincites
- [ ] Cases use Bluebook format
- [ ] IRC citations use § symbol
- [ ] IRS guidance includes I.R.B. citations
- [ ] Opinion level stated in Conclusion
- [ ] Red-Team has 3 counter-arguments with likelihoods
- [ ] Risk section included only if risk > Medium
- [ ] Facts sanitized (no client identifiers)
- [ ] URLs include date accessed
- [ ] No fabricated citations
- [ ] Cases Shepardized (evidence on file)

**Reviewer:** _________________ **Date:** _________

---

*This memo is attorney work product prepared for internal use. Confidential and privileged.*
`))

var planTemplate = template.Must(template.New("plan").Parse(`# Research Plan: {{.MatterTitle}}

**Date:** {{.Date}}
**Question:** {{.Question}}

---

## 1) Matter Snapshot

- **Short Title:** {{.MatterTitle}}
- **Question to Answer:** {{.Question}}
- **Jurisdictions / Regimes:** [US Subpart F/GILTI; OECD Pillar Two; Treaty X-Y; Country A/B]
- **Time Period / Tax Years:** [Specify]
- **Deliverable:** Executive answer + Practitioner memo
- **Deadline:** [Date]

---

## 2) Facts (Sanitized)

[3-10 bullets of essential facts. Remove/mask identifiers.]

-
-
-

---

## 3) Issues & Sub-Issues

1. **[Sub-issue #1]**
   - Hypothesis / what would prove or refute:

2. **[Sub-issue #2]**
   - Hypothesis:

3. **[Sub-issue #3]**
   - Hypothesis:

---

## 4) Authorities to Consult

### 4.1 U.S. Primary

- **IRC:** § [section]
- **Treasury Regulations:** § [regulation]
- **IRS Guidance:** Notice [number]; Rev. Rul. [number]
- **Cases:** [Bluebook cites with pincites]

### 4.2 OECD / Pillar Two

- **Model Convention:** Art. [number], Commentary ¶[number]
- **Administrative Guidance:** §[section] ([Month YYYY] update)

### 4.3 Treaties & Technical Explanations

- **Treaty (X-Y):** Art. [number], LOB provisions
- **Technical Explanation:** pages [number]

### 4.4 Local Law

- **Statutes:** [citation]
- **Regulations:** [citation]
- **Official translations:** [Yes/No]

### 4.5 Secondary (label as secondary)

- [Big Four / law firm memos]
- [Treatises / journals]

---

## 5) Search Strategy & Source Locations

### Government Portals

- IRS.gov: [specific pages]
- OECD.org: [specific pages]
- EUR-Lex / official gazettes: [if applicable]

### Search Strings

- ` + "`\"[term]\" + site:irs.gov + \"IRC\"`" + `
- ` + "`\"[term]\" + site:oecd.org + \"Article X\"`" + `

### Case Law

- [Public sources; note Shepardization needed]

---

## 6) Expected Deliverables & Exhibits

### Tables/Appendices

- [ ] Treaty LOB/BO table
- [ ] PE risk grid
- [ ] Withholding rate matrix
- [ ] Other: [specify]

---

## 7) Assumptions, Unknowns, Data Requests

### Assumptions (to proceed)

1.
2.
3.

### Unknowns / Clarifications Needed

1.
2.
3.

### Data / Documents to Request

- Contracts
- Org charts
- Payment logs
- TP documentation
- Other:

---

## 8) Risk Forecasters (Early View)

- **Sub-issue #1:** [Reasonable authority / Substantial authority / MLTN / Should] (tentative)
- **Sub-issue #2:** [Level] (tentative)
- **Overall:** [Level] (tentative)

**Penalty shield needed:** [Yes/No - only if overall risk > Medium]

---

## 9) Plan Approval

- **Reviewer:** [Name]
- **Date:** [Date]
- **Decision:** [Approved / Revise: ...]
- **Notes:**

---
`))

// GenerateBlankMemo renders the house memo skeleton with every
// required section in order.
func GenerateBlankMemo(p MemoParams) (string, error) {
	if p.Date == "" {
		p.Date = time.Now().Format("2006-01-02")
	}
	if p.Author == "" {
		p.Author = "[Author]"
	}
	if p.SelfPrefix == "" {
		p.SelfPrefix = "Cargill"
	}

	var sb strings.Builder
	if err := memoTemplate.Execute(&sb, p); err != nil {
		return "", fmt.Errorf("failed to render memo template: %w", err)
	}
	return sb.String(), nil
}

// GenerateResearchPlan renders the research plan skeleton.
func GenerateResearchPlan(p PlanParams) (string, error) {
	if p.Date == "" {
		p.Date = time.Now().Format("2006-01-02")
	}

	var sb strings.Builder
	if err := planTemplate.Execute(&sb, p); err != nil {
		return "", fmt.Errorf("failed to render research plan template: %w", err)
	}
	return sb.String(), nil
}
