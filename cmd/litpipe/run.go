package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litpipe/internal/history"
	"github.com/pdiddy/litpipe/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run <keywords>",
	Short: "Run the full research pipeline once",
	Long: `Run executes the three-stage chain for the given search keywords:
literature retrieval from PubMed, statistical analysis with chart
rendering, and report synthesis. The full result is printed as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := args[0]
		cfg := pipelineConfig()
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
		if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
		if model, _ := cmd.Flags().GetString("model"); model != "" {
			cfg.LLM.ModelName = model
		}
		if email, _ := cmd.Flags().GetString("email"); email != "" {
			cfg.EntrezEmail = email
		}
		if maxPapers, _ := cmd.Flags().GetInt("max-papers"); maxPapers > 0 {
			cfg.Literature.MaxPapers = maxPapers
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		p := pipeline.Build(cfg)
		p.Progress = os.Stderr
		result := p.Run(cmd.Context(), keywords)

		if store, err := history.NewStore(viper.GetString("history.dir")); err == nil {
			defer store.Close()
			if _, err := store.Record(cmd.Context(), keywords, result); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording run failed: %v\n", err)
			}
		} else {
			fmt.Fprintf(os.Stderr, "warning: opening history store failed: %v\n", err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	runCmd.Flags().String("api-key", "", "LLM API key (overrides config and secrets)")
	runCmd.Flags().String("base-url", "", "OpenAI-compatible base URL")
	runCmd.Flags().String("model", "", "model name")
	runCmd.Flags().String("email", "", "PubMed contact email")
	runCmd.Flags().Int("max-papers", 0, "maximum papers to retrieve")

	rootCmd.AddCommand(runCmd)
}
