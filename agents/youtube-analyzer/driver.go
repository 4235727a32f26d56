package youtubeanalyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/report"
)

// Runner performs one analysis.
type Runner interface {
	Analyze(ctx context.Context, url string, maxComments int) (*models.AnalysisResult, error)
}

// DriverEvents provides callbacks for monitoring each analysis
type DriverEvents struct {
	OnSuccess func(result *models.AnalysisResult, duration time.Duration)
	OnFailure func(err error, duration time.Duration)
}

// Driver runs the prompt, analyze, repeat loop.
type Driver struct {
	runner   Runner
	prompter Prompter
	out      io.Writer
	events   *DriverEvents
}

func NewDriver(runner Runner, prompter Prompter, out io.Writer, events *DriverEvents) *Driver {
	if events == nil {
		events = &DriverEvents{}
	}
	return &Driver{
		runner:   runner,
		prompter: prompter,
		out:      out,
		events:   events,
	}
}

// Run analyzes initialURL (when set) and then keeps asking for videos until the
// user declines, input ends or ctx is cancelled. With once set, only the
// initial URL is analyzed. Analysis failures are reported, never returned.
func (d *Driver) Run(ctx context.Context, initialURL string, maxComments int, once bool) error {
	fmt.Fprintln(d.out, "🎬 YouTube Video Analyzer - Interactive Mode")
	fmt.Fprintln(d.out, "============================================")

	currentURL := initialURL
	for ctx.Err() == nil {
		if currentURL == "" {
			url, count, err := d.askVideo(ctx, maxComments)
			if sessionOver(ctx, err) {
				break
			}
			if err != nil {
				return err
			}
			currentURL, maxComments = url, count
		}

		d.analyzeVideo(ctx, currentURL, maxComments)
		currentURL = ""

		if once || ctx.Err() != nil {
			break
		}

		again, err := d.prompter.Confirm(ctx, "Analyze another video?", true)
		if sessionOver(ctx, err) || (err == nil && !again) {
			break
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(d.out, "👋 Thanks for using YouTube Video Analyzer!")
	return nil
}

// sessionOver reports whether err means the user is gone: input ended or ctx was cancelled.
func sessionOver(ctx context.Context, err error) bool {
	return errors.Is(err, io.EOF) || (err != nil && ctx.Err() != nil)
}

func (d *Driver) askVideo(ctx context.Context, defaultCount int) (string, int, error) {
	url, err := d.prompter.AskURL(ctx)
	if err != nil {
		return "", 0, err
	}
	count, err := d.prompter.AskCommentCount(ctx, defaultCount)
	if err != nil {
		return "", 0, err
	}
	return url, count, nil
}

// analyzeVideo runs one analysis and prints its outcome.
func (d *Driver) analyzeVideo(ctx context.Context, url string, maxComments int) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "🚀 Starting YouTube video analysis...")
	fmt.Fprintln(d.out, "📹 URL:", url)
	fmt.Fprintln(d.out)

	start := time.Now()
	result, err := d.runner.Analyze(ctx, url, maxComments)
	duration := time.Since(start)

	if err != nil {
		fmt.Fprintln(d.out, "❌ Analysis failed:", err)
		fmt.Fprintln(d.out)
		if d.events.OnFailure != nil {
			d.events.OnFailure(err, duration)
		}
		return
	}

	transcript := "Not available"
	if result.Transcript != "" {
		transcript = "Available"
	}

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "✅ Analysis complete!")
	fmt.Fprintln(d.out, "📄 File created:", result.FileName)
	fmt.Fprintln(d.out, "📊 Video stats:")
	fmt.Fprintf(d.out, "   - Title: %s\n", result.Video.Title)
	fmt.Fprintf(d.out, "   - Views: %s\n", report.FormatCount(result.Video.ViewCount))
	fmt.Fprintf(d.out, "   - Comments analyzed: %d\n", len(result.Comments))
	fmt.Fprintf(d.out, "   - Transcript: %s\n", transcript)
	if result.Summary != "" {
		fmt.Fprintln(d.out, "   - Summary: Available")
	}
	fmt.Fprintln(d.out)

	if d.events.OnSuccess != nil {
		d.events.OnSuccess(result, duration)
	}
}
