package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/skills"
)

var skillsFromResume bool

var skillsCmd = &cobra.Command{
	Use:   "skills [file]",
	Short: "Extract known skills from text",
	Long:  "Run the skill extractor over a file (or stdin) and print the matched lexicon terms.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSkills,
}

func init() {
	skillsCmd.Flags().BoolVar(&skillsFromResume, "resume", false, "use the resume extraction cap instead of the job cap")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error
	if len(args) > 0 {
		text, err = os.ReadFile(args[0])
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var found []string
	if skillsFromResume {
		found = skills.ExtractFromResume(string(text))
	} else {
		found = skills.ExtractFromJob(string(text))
	}

	if len(found) == 0 {
		fmt.Println("No known skills found.")
		return nil
	}
	fmt.Println(strings.Join(found, "\n"))
	return nil
}
