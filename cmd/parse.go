package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/logx"
)

var parsePretty bool

var parseCmd = &cobra.Command{
	Use:   "parse <files...>",
	Short: "Parse resume documents and print the results as JSON",
	Long: `Parse one or more resume documents (.pdf, .docx, .doc, .txt, .md,
.rtf) and print one JSON result per file to stdout. A file that fails to
parse produces a result with its errors recorded; it never aborts the
batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		parser := parse.NewResumeParser()

		enc := json.NewEncoder(os.Stdout)
		if parsePretty {
			enc.SetIndent("", "  ")
		}

		failures := 0
		for _, path := range args {
			result := parser.ParseFile(path)
			if !result.Success() {
				failures++
				logx.Warnf("Parse produced no usable output for %s: %v", path, result.Errors)
			}

			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode result for %s: %w", path, err)
			}
		}

		if failures > 0 {
			logx.Warnf("%d of %d files failed to parse", failures, len(args))
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", false, "indent JSON output")
	rootCmd.AddCommand(parseCmd)
}
