package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litpipe/internal/history"
	"github.com/pdiddy/litpipe/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research pipeline over HTTP",
	Long: `Serve exposes POST /research, GET /healthz and GET /runs. Each research
request carries its own LLM credentials and PubMed contact email; the
server supplies plot and report directories from its configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		opts := []server.Option{}
		store, err := history.NewStore(viper.GetString("history.dir"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: run history disabled: %v\n", err)
		} else {
			defer store.Close()
			opts = append(opts, server.WithStore(store))
		}

		return server.New(pipelineConfig(), opts...).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":5000", "listen address")

	rootCmd.AddCommand(serveCmd)
}
