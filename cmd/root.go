package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/internal/config"
	"github.com/hirelens/hirelens/pkg/logx"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hirelens",
	Short: "Resume and job-description screening pipeline",
	Long: `hirelens extracts structured data from resume documents, parses job
descriptions, scores resume/job matches and audits score batches for
demographic fairness.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional; env vars use the HIRELENS_ prefix)")
}

// loadConfig reads config and applies the log level. All subcommands go
// through here.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logx.SetLevelString(cfg.LogLevel)
	return cfg, nil
}
