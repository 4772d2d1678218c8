package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litpipe/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		exportPath, _ := cmd.Flags().GetString("export")

		store, err := history.NewStore(viper.GetString("history.dir"))
		if err != nil {
			return err
		}
		defer store.Close()

		if exportPath != "" {
			if err := store.ExportYAML(cmd.Context(), exportPath); err != nil {
				return err
			}
			fmt.Println("Exported run history to", exportPath)
			return nil
		}

		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if asJSON {
			out, err := json.MarshalIndent(runs, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding runs: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tKEYWORDS\tSTATUS\tSTAGE\tPAPERS\tMETHOD\tREPORT")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				run.CreatedAt.Format("2006-01-02 15:04"), run.Keywords,
				run.ChainStatus, run.Stage, run.TotalPapers,
				run.MainResearchMethod, run.ReportPath)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("export", "", "write the full run history to a YAML file")

	rootCmd.AddCommand(historyCmd)
}
