package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/skills"
)

var (
	matchResume []string
	matchJob    []string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score resume skills against job skills",
	Long: "Compute the percentage overlap between a set of resume skills and a set\n" +
		"of job skills. The same scorer the search pipeline uses.",
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringSliceVar(&matchResume, "resume-skills", nil, "comma-separated resume skills (required)")
	matchCmd.Flags().StringSliceVar(&matchJob, "job-skills", nil, "comma-separated job skills (required)")
	matchCmd.MarkFlagRequired("resume-skills")
	matchCmd.MarkFlagRequired("job-skills")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	score, matching := skills.Match(matchResume, matchJob)
	missing := skills.Missing(matchResume, matchJob)

	fmt.Printf("match score: %d%%\n", score)
	if len(matching) > 0 {
		fmt.Printf("matching:    %s\n", strings.Join(matching, ", "))
	}
	if len(missing) > 0 {
		fmt.Printf("missing:     %s\n", strings.Join(missing, ", "))
	}
	return nil
}
