package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/history"
	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/skills"
)

var (
	searchLocation   string
	searchLimit      int
	searchSources    []string
	resumeSkillsFlag []string
	resumeFile       string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search jobs across all sources",
	Long: "Fan the query out to every selected source, deduplicate and rank the\n" +
		"results, and (with resume skills) score each listing against them.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "location filter (e.g. \"New York, US\")")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().StringSliceVarP(&searchSources, "sources", "s", nil, "sources to query (remotive,adzuna,websearch,legacyboard; default all)")
	searchCmd.Flags().StringSliceVar(&resumeSkillsFlag, "resume-skills", nil, "comma-separated resume skills for match scoring")
	searchCmd.Flags().StringVar(&resumeFile, "resume-file", "", "plain-text resume to extract skills from")
	rootCmd.AddCommand(searchCmd)
}

// Result list styles.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	companyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	scoreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	var sources []model.Source
	for _, name := range searchSources {
		src, ok := model.ParseSource(name)
		if !ok {
			return fmt.Errorf("unknown source %q", name)
		}
		sources = append(sources, src)
	}

	resumeSkills := resumeSkillsFlag
	if resumeFile != "" {
		text, err := os.ReadFile(resumeFile)
		if err != nil {
			return fmt.Errorf("reading resume file: %w", err)
		}
		resumeSkills = skills.ExtractFromResume(string(text))
		logger.Info("extracted resume skills", "count", len(resumeSkills))
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	agg := buildAggregator(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := model.SearchRequest{
		Query:        query,
		Location:     searchLocation,
		Limit:        limit,
		Sources:      sources,
		ResumeSkills: resumeSkills,
	}
	jobs := agg.SearchJobs(ctx, req)

	recordHistory(cfg.HistoryPath, req, len(jobs), logger)

	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}

	for i, job := range jobs {
		fmt.Printf("%2d. %s — %s\n", i+1, titleStyle.Render(job.Title), companyStyle.Render(job.Company))
		fmt.Printf("    %s\n", dimStyle.Render(fmt.Sprintf("%s | %s | %s | %s | posted %s",
			job.Location, job.JobType, job.Salary, job.Source, job.PostedDate)))
		if len(job.Skills) > 0 {
			fmt.Printf("    skills: %s\n", strings.Join(job.Skills, ", "))
		}
		if job.Scored {
			fmt.Printf("    %s", scoreStyle.Render(fmt.Sprintf("match: %d%%", job.MatchScore)))
			if len(job.MatchingSkills) > 0 {
				fmt.Printf(" (%s)", strings.Join(job.MatchingSkills, ", "))
			}
			fmt.Println()
		}
		fmt.Printf("    %s\n", dimStyle.Render(job.URL))
	}

	return nil
}

// recordHistory logs the search to the history store; failures are
// non-fatal.
func recordHistory(path string, req model.SearchRequest, results int, logger *slog.Logger) {
	if path == "" {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(req.Query, req.Location, req.Sources, results); err != nil {
		logger.Warn("failed to record search", "error", err)
	}
}
