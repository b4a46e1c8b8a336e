package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarterdeck/taxdesk/internal/qa"
)

var (
	planQuestion      string
	planFacts         string
	planJurisdictions []string
	planOutput        string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a research plan with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		facts := ""
		if planFacts != "" {
			var err error
			facts, err = readFileArg(planFacts)
			if err != nil {
				return err
			}
		} else {
			fmt.Println("Tip: provide --facts with a sanitized facts file for better results")
		}

		a, err := newAgent()
		if err != nil {
			return err
		}

		plan, err := a.GenerateResearchPlan(cmd.Context(), planQuestion, facts, planJurisdictions)
		if err != nil {
			return err
		}

		if err := writeOutput(planOutput, plan); err != nil {
			return err
		}
		fmt.Printf("Research plan saved to %s\n", planOutput)

		preview := plan
		if len(preview) > 800 {
			preview = preview[:800] + "..."
		}
		fmt.Println("\nPreview:")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Println(preview)
		return nil
	},
}

var (
	draftPlan    string
	draftFacts   string
	draftContext string
	draftOutput  string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a memo from an approved research plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readFileArg(draftPlan)
		if err != nil {
			return err
		}
		facts, err := readFileArg(draftFacts)
		if err != nil {
			return err
		}
		extra := ""
		if draftContext != "" {
			extra, err = readFileArg(draftContext)
			if err != nil {
				return err
			}
		}

		a, err := newAgent()
		if err != nil {
			return err
		}

		memo, err := a.DraftMemo(cmd.Context(), plan, facts, extra)
		if err != nil {
			return err
		}

		if err := writeOutput(draftOutput, memo); err != nil {
			return err
		}
		fmt.Printf("Draft memo saved to %s\n", draftOutput)

		// Immediate rule-based feedback on the fresh draft.
		report := qa.NewChecker(memo, cfg.Sanitizer.SelfPrefix).Run()
		fmt.Printf("Initial QA score: %s\n", report.Score())
		return nil
	},
}

var reviewSuggest bool

var reviewCmd = &cobra.Command{
	Use:   "review [memo file]",
	Short: "LLM review of memo structure and citations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		memo, err := readFileArg(args[0])
		if err != nil {
			return err
		}

		a, err := newAgent()
		if err != nil {
			return err
		}

		fmt.Println("Checking structure...")
		structure, err := a.ValidateMemoStructure(cmd.Context(), memo)
		if err != nil {
			return err
		}
		if structure.ParseError != "" {
			fmt.Printf("  Could not parse structure review: %s\n", structure.ParseError)
		} else {
			fmt.Printf("  Executive Answer: %d words\n", structure.ExecutiveAnswerWordCount)
			opinion := structure.OpinionLevel
			if opinion == "" {
				opinion = "Not stated"
			}
			fmt.Printf("  Opinion Level: %s\n", opinion)
			if structure.AllSectionsPresent {
				fmt.Println("  Sections: complete")
			} else {
				fmt.Printf("  Sections: missing %s\n", strings.Join(structure.MissingSections, ", "))
			}
		}

		fmt.Println("\nReviewing citations...")
		citations, err := a.ReviewCitations(cmd.Context(), memo)
		if err != nil {
			return err
		}
		if citations.ParseError != "" {
			fmt.Printf("  Could not parse citation review: %s\n", citations.ParseError)
		} else {
			fmt.Printf("  Total citations: %d\n", citations.TotalCitations)
			fmt.Printf("  Quality: %s\n", citations.OverallQuality)
			if len(citations.Issues) > 0 {
				fmt.Printf("  Issues found: %d\n", len(citations.Issues))
				for i, issue := range citations.Issues {
					if i == 5 {
						break
					}
					fmt.Printf("    - %s (%s)\n", issue.Issue, issue.Severity)
				}
			}
		}

		if reviewSuggest {
			fmt.Println("\nGathering improvement suggestions...")
			report := qa.NewChecker(memo, cfg.Sanitizer.SelfPrefix).Run()
			suggestions, err := a.SuggestImprovements(cmd.Context(), memo, report.RenderText())
			if err != nil {
				return err
			}
			fmt.Println(suggestions)
		}

		fmt.Println("\nReview complete")
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planQuestion, "question", "q", "", "tax research question")
	planCmd.Flags().StringVarP(&planFacts, "facts", "f", "", "sanitized facts file")
	planCmd.Flags().StringSliceVarP(&planJurisdictions, "jurisdictions", "j", nil, "jurisdictions involved")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "research_plan.md", "output file")
	_ = planCmd.MarkFlagRequired("question")

	draftCmd.Flags().StringVarP(&draftPlan, "plan", "p", "", "approved research plan file")
	draftCmd.Flags().StringVarP(&draftFacts, "facts", "f", "", "sanitized facts file")
	draftCmd.Flags().StringVar(&draftContext, "context", "", "additional context file")
	draftCmd.Flags().StringVarP(&draftOutput, "output", "o", "memo_draft.md", "output file")
	_ = draftCmd.MarkFlagRequired("plan")
	_ = draftCmd.MarkFlagRequired("facts")

	reviewCmd.Flags().BoolVar(&reviewSuggest, "suggest", false, "also ask for improvement suggestions")
}
