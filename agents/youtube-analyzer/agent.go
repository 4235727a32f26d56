package youtubeanalyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"youtube-analyzer/agents/youtube-analyzer/youtube"
	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/ai"
	"youtube-analyzer/shared/config"
	"youtube-analyzer/shared/report"
	"youtube-analyzer/shared/storage"
)

// VideoSource fetches video metadata and comments.
type VideoSource interface {
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)
	GetComments(ctx context.Context, videoID string, maxResults int64) ([]*models.Comment, error)
}

type TranscriptSource interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

type TranscriptSummarizer interface {
	Summarize(ctx context.Context, video *models.Video, transcript string) (string, error)
}

type ReportSaver interface {
	Save(content string) (string, error)
}

// YouTubeAnalyzer turns one video URL into a saved markdown report.
type YouTubeAnalyzer struct {
	config      *config.Config
	videos      VideoSource
	transcripts TranscriptSource
	summarizer  TranscriptSummarizer
	store       ReportSaver
}

func NewYouTubeAnalyzer(cfg *config.Config) *YouTubeAnalyzer {
	return &YouTubeAnalyzer{
		config: cfg,
	}
}

func (y *YouTubeAnalyzer) Name() string {
	return "YouTube Video Analyzer"
}

// Initialize creates every collaborator that has not been set already.
// A summarizer that cannot be created only disables summaries.
func (y *YouTubeAnalyzer) Initialize(ctx context.Context) error {
	log.Printf("Initializing %s...", y.Name())

	if y.videos == nil {
		client, err := youtube.NewClient(ctx, &y.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		y.videos = client
		log.Println("YouTube client initialized")
	}

	if y.transcripts == nil {
		timeout := time.Duration(y.config.Transcript.ScrapeTimeoutSeconds) * time.Second
		scraper := youtube.NewCaptionScraper(timeout)
		y.transcripts = youtube.NewTranscriptClient(scraper, y.config.Transcript.PreferredLanguage)
		log.Printf("Transcript client initialized (preferred language: %s)", y.config.Transcript.PreferredLanguage)
	}

	if y.summarizer == nil && y.config.AI.Enabled() {
		summarizer, err := ai.NewSummarizer(ctx, &y.config.AI)
		if err != nil {
			log.Printf("Warning: transcript summaries disabled: %v", err)
		} else {
			y.summarizer = summarizer
			log.Printf("Transcript summarizer initialized (model: %s)", y.config.AI.Model)
		}
	}

	if y.store == nil {
		y.store = storage.NewReportStore(y.config.Output.Dir, y.config.Output.Prefix)
		log.Printf("Reports will be written to %s", y.config.Output.Dir)
	}

	return nil
}

// Analyze fetches everything known about the video at url and saves the report.
// Only an invalid URL, a metadata failure or a save failure abort the analysis;
// comments, transcript and summary degrade to empty values.
func (y *YouTubeAnalyzer) Analyze(ctx context.Context, url string, maxComments int) (*models.AnalysisResult, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return nil, err
	}

	log.Println("Fetching video info...")
	video, err := y.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	log.Printf("Fetching up to %d comments...", maxComments)
	comments, err := y.videos.GetComments(ctx, videoID, int64(maxComments))
	if err != nil {
		log.Printf("Comments unavailable: %v", err)
		comments = []*models.Comment{}
	}

	log.Println("Fetching transcript...")
	transcript, err := y.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		log.Printf("Transcript unavailable: %v", err)
		transcript = ""
	} else {
		log.Printf("Transcript fetched (%d characters)", len(transcript))
	}

	var summary string
	if y.summarizer != nil && transcript != "" {
		log.Println("Summarizing transcript...")
		summary, err = y.summarizer.Summarize(ctx, video, transcript)
		if err != nil {
			log.Printf("Summary unavailable: %v", err)
			summary = ""
		}
	}

	markdown := report.BuildMarkdown(report.Input{
		Video:       video,
		OriginalURL: url,
		Comments:    comments,
		Transcript:  transcript,
		Summary:     summary,
	})

	fileName, err := y.store.Save(markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	log.Printf("Analysis saved to: %s (%d comments)", fileName, len(comments))

	return &models.AnalysisResult{
		FileName:   fileName,
		Video:      video,
		Comments:   comments,
		Transcript: transcript,
		Summary:    summary,
	}, nil
}
