package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/litpipe/pkg/types"
)

// Viper keys and their defaults. Flags override config file values which
// override secrets.
func init() {
	viper.SetDefault("literature.max_papers", 10)
	viper.SetDefault("render.plot_dir", "plots")
	viper.SetDefault("render.format", "png")
	viper.SetDefault("report.report_dir", "reports")
	viper.SetDefault("history.dir", "history")
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "litpipe/"+version)
}

// pipelineConfig assembles the run configuration from viper and the loaded
// secrets.
func pipelineConfig() types.PipelineConfig {
	timeout, err := time.ParseDuration(viper.GetString("http.timeout"))
	if err != nil {
		timeout = 30 * time.Second
	}

	return types.PipelineConfig{
		LLM: types.LLMConfig{
			BaseURL:   secretDefault("llm-base-url", viper.GetString("llm.base_url")),
			APIKey:    secretDefault("llm-api-key", viper.GetString("llm.api_key")),
			ModelName: secretDefault("llm-model", viper.GetString("llm.model_name")),
		},
		Literature: types.LiteratureConfig{
			MaxPapers: viper.GetInt("literature.max_papers"),
		},
		Render: types.RenderConfig{
			PlotDir: viper.GetString("render.plot_dir"),
			Format:  types.PlotFormat(viper.GetString("render.format")),
			Width:   viper.GetInt("render.width"),
			Height:  viper.GetInt("render.height"),
		},
		Report: types.ReportConfig{
			ReportDir: viper.GetString("report.report_dir"),
		},
		EntrezEmail: secretDefault("entrez-email", viper.GetString("entrez_email")),
		HTTP: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("http.user_agent"),
		},
	}
}
