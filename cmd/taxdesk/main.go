package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quarterdeck/taxdesk/internal/agent"
	"github.com/quarterdeck/taxdesk/internal/config"
	"github.com/quarterdeck/taxdesk/internal/llm"
)

var (
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taxdesk",
	Short: "International tax research & memo QA toolkit",
	Long: `taxdesk assists international tax research end to end: it sanitizes
confidential fact patterns, validates citation formats, runs the
house QA checklist over memo drafts, searches public IRS and OECD
guidance, and drives LLM-assisted planning and drafting.

The sanitizer, citation validator and QA checker are fully rule-based
and need no API key. Planning, drafting and review commands require a
configured LLM provider.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
			cfg.ApplyEnv()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newAgent wires an LLM client and research agent from the loaded
// config. Commands that need the model call this lazily so the
// rule-based commands keep working without a key.
func newAgent() (*agent.Agent, error) {
	client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		return nil, err
	}
	return agent.New(client, logger, agent.Options{
		ResearchPrompt: cfg.Prompts.ResearchAgent,
		CitationPrompt: cfg.Prompts.CitationValidator,
	}), nil
}

func readFileArg(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

func main() {
	// A .env in the working directory is a convenience for local use.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		sanitizeCmd,
		validateCmd,
		qaCmd,
		templateCmd,
		planCmd,
		draftCmd,
		reviewCmd,
		searchIRSCmd,
		searchOECDCmd,
		verifyCitationCmd,
		serveCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
