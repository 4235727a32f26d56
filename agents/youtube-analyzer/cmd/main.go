package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	youtubeanalyzer "youtube-analyzer/agents/youtube-analyzer"
	"youtube-analyzer/agents/youtube-analyzer/youtube"
	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/config"
	"youtube-analyzer/shared/monitoring"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitConfig = 1
	exitUsage  = 2
)

// exitError carries the process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.code == exitUsage {
				fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", exitErr.err, cmd.UsageString())
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitConfig)
	}
}

func newRootCommand() *cobra.Command {
	var comments int

	cmd := &cobra.Command{
		Use:   "youtube-analyzer [url]",
		Short: "Analyze YouTube videos and extract metadata, comments, and transcripts",
		Long: `Fetches the metadata, top comments and transcript of a YouTube video and writes
a markdown report to outputs/competitor-<n>.md.

Without a URL argument the analyzer prompts for the URL and the comment count.
Requires YOUTUBE_API_KEY in the environment or in a .env file.

Exit codes:
  0  session finished, including videos whose analysis failed
  1  missing API key, unreadable or invalid config file, or client setup failure
  2  usage error, such as an unknown flag or --comments outside 1-100`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) > 0 {
				url = args[0]
			}
			return run(cmd, url, comments)
		},
	}

	cmd.Flags().IntVarP(&comments, "comments", "c", config.DefaultComments, "Maximum number of comments to fetch (1-100)")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	return cmd
}

func run(cmd *cobra.Command, url string, comments int) error {
	commentsSet := cmd.Flags().Changed("comments")
	if commentsSet && (comments < 1 || comments > youtube.MaxCommentResults) {
		return usageError(fmt.Errorf("--comments must be between 1 and %d, got %d", youtube.MaxCommentResults, comments))
	}

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "❌ Error: API key not found")
			fmt.Fprintln(os.Stderr, "Please create a .env file with YOUTUBE_API_KEY=your_key")
			fmt.Fprintln(os.Stderr, "See .env.example for reference")
			return &exitError{code: exitConfig, err: err}
		}
		log.Printf("Failed to load configuration: %v", err)
		return &exitError{code: exitConfig, err: err}
	}
	if !commentsSet {
		comments = cfg.YouTube.DefaultComments
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	analyzer := youtubeanalyzer.NewYouTubeAnalyzer(cfg)
	if err := analyzer.Initialize(ctx); err != nil {
		log.Printf("Failed to initialize analyzer: %v", err)
		return &exitError{code: exitConfig, err: err}
	}

	monitor := monitoring.NewMonitor()
	events := &youtubeanalyzer.DriverEvents{
		OnSuccess: func(result *models.AnalysisResult, duration time.Duration) {
			monitor.RecordSuccess(result.FileName, duration)
		},
		OnFailure: func(err error, duration time.Duration) {
			monitor.RecordFailure(err, duration)
		},
	}

	// Piped input with a URL argument analyzes that video and exits
	once := url != "" && !term.IsTerminal(int(os.Stdin.Fd()))

	out := cmd.OutOrStdout()
	driver := youtubeanalyzer.NewDriver(analyzer, youtubeanalyzer.NewLinePrompter(os.Stdin, out), out, events)
	if err := driver.Run(ctx, url, comments, once); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}

	logSessionSummary(monitor)
	return nil
}

func logSessionSummary(monitor *monitoring.Monitor) {
	if monitor.IsHealthy() {
		log.Printf("Session complete: %s", monitor.GetStatusSummary())
		return
	}
	log.Printf("Session ended after a failed analysis: %s", monitor.GetStatusSummary())
}
