package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarterdeck/taxdesk/internal/citation"
	"github.com/quarterdeck/taxdesk/internal/memotmpl"
	"github.com/quarterdeck/taxdesk/internal/qa"
	"github.com/quarterdeck/taxdesk/internal/redact"
)

var (
	sanitizeOutput string
	sanitizeReport string
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [input file]",
	Short: "Redact confidential facts in a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		outputPath := sanitizeOutput
		if outputPath == "" {
			ext := filepath.Ext(inputPath)
			outputPath = strings.TrimSuffix(inputPath, ext) + "_sanitized.txt"
		}

		report, err := redact.SanitizeFile(inputPath, outputPath, redact.Config{
			SelfPrefix:        cfg.Sanitizer.SelfPrefix,
			PreserveStructure: cfg.Sanitizer.PreserveStructure,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Sanitized text saved to %s\n", outputPath)
		fmt.Printf("  Entities redacted: %d\n", report.EntitiesRedacted)
		fmt.Printf("  People redacted: %d\n", report.PeopleRedacted)
		fmt.Printf("  Amounts redacted: %d\n", report.AmountsRedacted)
		fmt.Printf("  Total redactions: %d\n", report.TotalRedactions)

		if sanitizeReport != "" {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode redaction report: %w", err)
			}
			if err := writeOutput(sanitizeReport, string(data)); err != nil {
				return err
			}
			fmt.Printf("  Report saved to %s\n", sanitizeReport)
		}
		return nil
	},
}

var (
	validateFormat string
	validateOutput string
)

var validateCmd = &cobra.Command{
	Use:   "validate [memo file]",
	Short: "Validate memo citation formats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		memo, err := readFileArg(args[0])
		if err != nil {
			return err
		}

		valid, issues := citation.ValidateAll(memo)
		summary := citation.Summary(memo)

		if validateFormat == "json" {
			if issues == nil {
				issues = []citation.Issue{}
			}
			out, err := json.MarshalIndent(map[string]any{
				"valid":        valid,
				"total_issues": len(issues),
				"issues":       issues,
				"summary":      summary,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode validation results: %w", err)
			}
			fmt.Println(string(out))
			if validateOutput != "" {
				return writeOutput(validateOutput, string(out))
			}
			return nil
		}

		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("CITATION VALIDATION REPORT")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("\nCitation Summary:")
		fmt.Printf("  IRC sections: %d\n", summary["irc_sections"])
		fmt.Printf("  Regulations: %d\n", summary["regulations"])
		fmt.Printf("  Cases: %d\n", summary["cases"])
		fmt.Printf("  Notices: %d\n", summary["notices"])
		fmt.Printf("  Revenue Rulings: %d\n", summary["revenue_rulings"])
		fmt.Printf("  Treaties: %d\n", summary["treaties"])
		fmt.Printf("  OECD: %d\n", summary["oecd"])

		if valid {
			fmt.Println("\nAll citations valid")
			return nil
		}

		fmt.Printf("\nFound %d citation issues:\n\n", len(issues))
		for _, issue := range issues {
			fmt.Printf("  %s: %s\n", strings.ToUpper(issue.Type), issue.Message)
			if issue.Citation != "" {
				fmt.Printf("    Citation: %.80s\n", issue.Citation)
			}
			if issue.Line > 0 {
				fmt.Printf("    Line: %d\n", issue.Line)
			}
			fmt.Println()
		}
		return nil
	},
}

var (
	qaFormat string
	qaOutput string
)

var qaCmd = &cobra.Command{
	Use:   "qa [memo file]",
	Short: "Run the house QA checklist on a memo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		memo, err := readFileArg(args[0])
		if err != nil {
			return err
		}

		report := qa.NewChecker(memo, cfg.Sanitizer.SelfPrefix).Run()

		if qaFormat == "json" {
			out, err := json.MarshalIndent(map[string]any{
				"score":         report.Score(),
				"passed":        report.Passed(),
				"total_checks":  report.TotalChecks,
				"passed_checks": report.PassedChecks,
				"failed_checks": report.FailedChecks,
				"warnings":      report.Warnings,
				"checks":        report.Checks,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode QA report: %w", err)
			}
			if qaOutput != "" {
				if err := writeOutput(qaOutput, string(out)); err != nil {
					return err
				}
				fmt.Printf("QA report saved to %s\n", qaOutput)
			} else {
				fmt.Println(string(out))
			}
		} else {
			text := report.RenderText()
			fmt.Println(text)
			if qaOutput != "" {
				if err := writeOutput(qaOutput, text); err != nil {
					return err
				}
				fmt.Printf("\nQA report saved to %s\n", qaOutput)
			}
		}

		if !report.Passed() {
			return fmt.Errorf("%d of %d checks failed", report.FailedChecks, report.TotalChecks)
		}
		fmt.Println("\nAll QA checks passed")
		return nil
	},
}

var (
	templateMatter   string
	templateQuestion string
	templateType     string
	templateOutput   string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate a blank memo or research plan template",
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string
		var err error
		var defaultName string

		switch templateType {
		case "memo":
			content, err = memotmpl.GenerateBlankMemo(memotmpl.MemoParams{
				MatterTitle: templateMatter,
				Question:    templateQuestion,
				SelfPrefix:  cfg.Sanitizer.SelfPrefix,
			})
			defaultName = strings.ReplaceAll(templateMatter, " ", "_") + "_memo.md"
		case "research_plan":
			content, err = memotmpl.GenerateResearchPlan(memotmpl.PlanParams{
				MatterTitle: templateMatter,
				Question:    templateQuestion,
			})
			defaultName = strings.ReplaceAll(templateMatter, " ", "_") + "_research_plan.md"
		default:
			return fmt.Errorf("unknown template type %q (want memo or research_plan)", templateType)
		}
		if err != nil {
			return err
		}

		outputPath := templateOutput
		if outputPath == "" {
			outputPath = defaultName
		}
		if err := writeOutput(outputPath, content); err != nil {
			return err
		}
		fmt.Printf("%s template saved to %s\n", templateType, outputPath)
		return nil
	},
}

func init() {
	sanitizeCmd.Flags().StringVarP(&sanitizeOutput, "output", "o", "", "output file path")
	sanitizeCmd.Flags().StringVarP(&sanitizeReport, "report", "r", "", "save redaction report JSON to file")

	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "output format (json|text)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "output file for results")

	qaCmd.Flags().StringVarP(&qaFormat, "format", "f", "text", "output format (json|text)")
	qaCmd.Flags().StringVarP(&qaOutput, "output", "o", "", "output report file")

	templateCmd.Flags().StringVarP(&templateMatter, "matter", "m", "", "short matter title")
	templateCmd.Flags().StringVarP(&templateQuestion, "question", "q", "", "research question")
	templateCmd.Flags().StringVarP(&templateType, "type", "t", "memo", "template type (memo|research_plan)")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "output file")
	_ = templateCmd.MarkFlagRequired("matter")
	_ = templateCmd.MarkFlagRequired("question")
}
