package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/screening/match"
)

var (
	matchResumeFile string
	matchJDFile     string
	matchPretty     bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one resume against one job description",
	Long: `Parse a resume document and a job-description text file, score the
pair with the matching engine and print the result as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		resumeParser := parse.NewResumeParser()
		resumeResult := resumeParser.ParseFile(matchResumeFile)
		if len(resumeResult.Errors) > 0 {
			return fmt.Errorf("parse resume %s: %v", matchResumeFile, resumeResult.Errors)
		}

		jdText, err := os.ReadFile(matchJDFile)
		if err != nil {
			return fmt.Errorf("read job description %s: %w", matchJDFile, err)
		}

		jdParser := parse.NewJDParser(parse.NewSkillsParser())
		jdResult := jdParser.ParseText(string(jdText))

		engine := match.NewEngine(match.DefaultWeights())
		result := engine.Match(&resumeResult, &jdResult)

		enc := json.NewEncoder(os.Stdout)
		if matchPretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchResumeFile, "resume", "", "resume document to parse")
	matchCmd.Flags().StringVar(&matchJDFile, "jd", "", "job-description text file")
	matchCmd.Flags().BoolVar(&matchPretty, "pretty", false, "indent JSON output")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("jd")
	rootCmd.AddCommand(matchCmd)
}
