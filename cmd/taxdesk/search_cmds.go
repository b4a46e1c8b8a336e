package main

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quarterdeck/taxdesk/internal/llm"
	"github.com/quarterdeck/taxdesk/internal/scrape"
)

func scrapeOptions() scrape.ClientOptions {
	return scrape.ClientOptions{
		Timeout:     cfg.ScrapeTimeout(),
		UserAgent:   cfg.Scraper.UserAgent,
		PoliteDelay: cfg.PoliteDelay(),
		Logger:      logger,
	}
}

var (
	searchIRSYear   int
	searchIRSOutput string
	searchIRSRerank bool
)

var searchIRSCmd = &cobra.Command{
	Use:   "search-irs [search term]",
	Short: "Search IRS.gov Internal Revenue Bulletins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := args[0]
		client := scrape.NewIRSClient(scrapeOptions())
		ctx := cmd.Context()

		var results []scrape.GuidanceResult
		if searchIRSYear > 0 {
			var err error
			results, err = client.SearchIRB(ctx, searchIRSYear, term)
			if err != nil {
				return err
			}
		} else {
			// No year given: walk back through the last five.
			currentYear := time.Now().Year()
			for y := currentYear; y > currentYear-5; y-- {
				yearResults, err := client.SearchIRB(ctx, y, term)
				if err != nil {
					return err
				}
				results = append(results, yearResults...)
				if y > currentYear-4 {
					if err := client.PoliteDelay(ctx); err != nil {
						return err
					}
				}
			}
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		if searchIRSRerank && len(results) > 1 {
			reranked, err := rerankGuidance(cmd, term, results)
			if err != nil {
				logger.Warn("rerank failed, keeping original order", zap.Error(err))
			} else {
				results = reranked
			}
		}

		fmt.Printf("Found %d results:\n\n", len(results))
		for i, r := range results {
			if i == 10 {
				break
			}
			fmt.Printf("  %d. %s\n     %s\n     Type: %s\n\n", i+1, r.Title, r.URL, r.SourceType)
		}

		if searchIRSOutput != "" {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}
			if err := writeOutput(searchIRSOutput, string(data)); err != nil {
				return err
			}
			fmt.Printf("Results saved to %s\n", searchIRSOutput)
		}
		return nil
	},
}

// rerankGuidance asks the configured LLM to order results by relevance.
func rerankGuidance(cmd *cobra.Command, query string, results []scrape.GuidanceResult) ([]scrape.GuidanceResult, error) {
	client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(results))
	for i, r := range results {
		candidates[i] = r.Title
	}

	indices, err := llm.NewLLMReranker(client).Rerank(cmd.Context(), query, candidates, 10)
	if err != nil {
		return nil, err
	}

	reranked := make([]scrape.GuidanceResult, 0, len(indices))
	for _, idx := range indices {
		reranked = append(reranked, results[idx])
	}
	return reranked, nil
}

var searchOECDOutput string

var searchOECDCmd = &cobra.Command{
	Use:   "search-oecd [keyword]",
	Short: "Search OECD Pillar Two guidance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scrape.NewOECDClient(scrapeOptions())

		results, err := client.SearchPillarTwo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		fmt.Printf("Found %d results:\n\n", len(results))
		for i, r := range results {
			if i == 10 {
				break
			}
			fmt.Printf("  %d. %s\n     %s\n\n", i+1, r.Title, r.URL)
		}

		if searchOECDOutput != "" {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}
			if err := writeOutput(searchOECDOutput, string(data)); err != nil {
				return err
			}
			fmt.Printf("Results saved to %s\n", searchOECDOutput)
		}
		return nil
	},
}

var verifyType string

var guidanceNumberInCitation = regexp.MustCompile(`\d{4}-\d+`)

var verifyCitationCmd = &cobra.Command{
	Use:   "verify-citation [citation]",
	Short: "Verify a citation resolves to a published document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cite := args[0]
		irs := scrape.NewIRSClient(scrapeOptions())
		ctx := cmd.Context()

		switch {
		case verifyType == "notice" || strings.Contains(cite, "Notice"):
			number := guidanceNumberInCitation.FindString(cite)
			if number == "" {
				return fmt.Errorf("no notice number found in %q", cite)
			}
			v, err := irs.VerifyNotice(ctx, number)
			if err != nil {
				return err
			}
			printVerification(v)

		case verifyType == "revenue_ruling" || strings.Contains(cite, "Rev. Rul."):
			number := guidanceNumberInCitation.FindString(cite)
			if number == "" {
				return fmt.Errorf("no revenue ruling number found in %q", cite)
			}
			v, err := irs.VerifyRevenueRuling(ctx, number)
			if err != nil {
				return err
			}
			printVerification(v)

		case verifyType == "reg" || strings.Contains(cite, "Treas. Reg."):
			section := strings.TrimSpace(strings.TrimPrefix(cite, "Treas. Reg."))
			section = strings.TrimSpace(strings.TrimPrefix(section, "§"))
			search, err := irs.RegulationInfo(ctx, section)
			if err != nil {
				return err
			}
			fmt.Printf("Found %d results for regulation %s:\n", len(search.Results), search.Section)
			for _, r := range search.Results {
				fmt.Printf("  - %s\n    %s\n", r.Title, r.URL)
			}

		case verifyType == "irc":
			section := strings.TrimSpace(strings.TrimPrefix(cite, "IRC"))
			section = strings.TrimSpace(strings.TrimPrefix(section, "§"))
			search, err := irs.SearchCodeSection(ctx, section)
			if err != nil {
				return err
			}
			fmt.Printf("Found %d results for section %s:\n", len(search.Results), search.Section)
			for _, r := range search.Results {
				fmt.Printf("  - %s\n    %s\n", r.Title, r.URL)
			}

		case strings.Contains(cite, "OECD") || strings.Contains(cite, "BEPS") ||
			strings.Contains(cite, "Pillar Two") || strings.Contains(cite, "GloBE"):
			oecd := scrape.NewOECDClient(scrapeOptions())
			v, err := oecd.VerifyCitation(ctx, cite)
			if err != nil {
				return err
			}
			printVerification(v)

		default:
			return fmt.Errorf("could not determine citation type; use --type (notice|revenue_ruling|irc|reg)")
		}
		return nil
	},
}

func printVerification(v *scrape.Verification) {
	if v.Valid {
		fmt.Println("Citation verified")
		if v.URL != "" {
			fmt.Printf("  URL: %s\n", v.URL)
		}
		if v.Source != "" {
			fmt.Printf("  Source: %s\n", v.Source)
		}
	} else {
		fmt.Println("Citation not found")
		if v.Note != "" {
			fmt.Printf("  Note: %s\n", v.Note)
		}
	}
}

func init() {
	searchIRSCmd.Flags().IntVarP(&searchIRSYear, "year", "y", 0, "tax year (e.g. 2020)")
	searchIRSCmd.Flags().StringVarP(&searchIRSOutput, "output", "o", "", "save results JSON to file")
	searchIRSCmd.Flags().BoolVar(&searchIRSRerank, "rerank", false, "rerank results with the configured LLM")

	searchOECDCmd.Flags().StringVarP(&searchOECDOutput, "output", "o", "", "save results JSON to file")

	verifyCitationCmd.Flags().StringVarP(&verifyType, "type", "t", "", "citation type (notice|revenue_ruling|irc|reg)")
}
