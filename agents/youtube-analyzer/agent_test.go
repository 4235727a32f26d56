package youtubeanalyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"youtube-analyzer/agents/youtube-analyzer/youtube"
	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/config"
	"youtube-analyzer/shared/storage"
)

type fakeVideoSource struct {
	video       *models.Video
	videoErr    error
	comments    []*models.Comment
	commentsErr error
	gotID       string
	gotMax      int64
}

func (f *fakeVideoSource) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	f.gotID = videoID
	return f.video, f.videoErr
}

func (f *fakeVideoSource) GetComments(ctx context.Context, videoID string, maxResults int64) ([]*models.Comment, error) {
	f.gotMax = maxResults
	return f.comments, f.commentsErr
}

type fakeTranscripts struct {
	text string
	err  error
}

func (f *fakeTranscripts) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	return f.text, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, video *models.Video, transcript string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func newTestAnalyzer(t *testing.T, videos VideoSource, transcripts TranscriptSource) (*YouTubeAnalyzer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "outputs")
	analyzer := NewYouTubeAnalyzer(&config.Config{})
	analyzer.videos = videos
	analyzer.transcripts = transcripts
	analyzer.store = storage.NewReportStore(dir, "competitor")
	return analyzer, dir
}

func TestYouTubeAnalyzerName(t *testing.T) {
	analyzer := NewYouTubeAnalyzer(&config.Config{})
	expected := "YouTube Video Analyzer"
	if name := analyzer.Name(); name != expected {
		t.Errorf("Name() = %s, want %s", name, expected)
	}
}

func TestAnalyze(t *testing.T) {
	t.Run("FullReport", func(t *testing.T) {
		videos := &fakeVideoSource{
			video:    &models.Video{ID: "dQw4w9WgXcQ", Title: "Go Tips", ViewCount: 1500},
			comments: []*models.Comment{{Author: "alice", Text: "Great video", LikeCount: 3}},
		}
		analyzer, dir := newTestAnalyzer(t, videos, &fakeTranscripts{text: "hello world"})

		result, err := analyzer.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 15)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}

		if videos.gotID != "dQw4w9WgXcQ" {
			t.Errorf("video ID = %s, want dQw4w9WgXcQ", videos.gotID)
		}
		if videos.gotMax != 15 {
			t.Errorf("maxResults = %d, want 15", videos.gotMax)
		}
		if result.FileName != filepath.Join(dir, "competitor-1.md") {
			t.Errorf("FileName = %s", result.FileName)
		}
		if result.Transcript != "hello world" || len(result.Comments) != 1 {
			t.Errorf("result = %+v", result)
		}

		data, err := os.ReadFile(result.FileName)
		if err != nil {
			t.Fatalf("Failed to read report: %v", err)
		}
		for _, want := range []string{"Go Tips", "alice", "hello world", "https://youtu.be/dQw4w9WgXcQ"} {
			if !strings.Contains(string(data), want) {
				t.Errorf("report missing %q", want)
			}
		}
	})

	t.Run("InvalidURL", func(t *testing.T) {
		videos := &fakeVideoSource{}
		analyzer, dir := newTestAnalyzer(t, videos, &fakeTranscripts{})

		_, err := analyzer.Analyze(context.Background(), "https://vimeo.com/123", 20)
		if !errors.Is(err, youtube.ErrInvalidInput) {
			t.Errorf("Analyze error = %v, want ErrInvalidInput", err)
		}
		if videos.gotID != "" {
			t.Error("no metadata request expected for an invalid URL")
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("no report should be written for an invalid URL")
		}
	})

	t.Run("MetadataFailureIsFatal", func(t *testing.T) {
		videos := &fakeVideoSource{videoErr: youtube.ErrNotFound}
		analyzer, dir := newTestAnalyzer(t, videos, &fakeTranscripts{text: "unused"})

		_, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20)
		if !errors.Is(err, youtube.ErrNotFound) {
			t.Errorf("Analyze error = %v, want ErrNotFound", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("no report should be written when metadata fails")
		}
	})

	t.Run("CommentsAndTranscriptDegrade", func(t *testing.T) {
		videos := &fakeVideoSource{
			video:       &models.Video{ID: "dQw4w9WgXcQ", Title: "Go Tips"},
			commentsErr: youtube.ErrTransport,
		}
		transcripts := &fakeTranscripts{err: youtube.ErrTranscriptUnavailable}
		analyzer, _ := newTestAnalyzer(t, videos, transcripts)

		result, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if result.Comments == nil || len(result.Comments) != 0 {
			t.Errorf("Comments = %v, want empty non-nil slice", result.Comments)
		}
		if result.Transcript != "" {
			t.Errorf("Transcript = %q, want empty", result.Transcript)
		}

		data, _ := os.ReadFile(result.FileName)
		if !strings.Contains(string(data), "Comments not available or disabled") {
			t.Error("report should contain the no-comments fallback")
		}
		if !strings.Contains(string(data), "Show transcript") {
			t.Error("report should contain the transcript instructions")
		}
	})

	t.Run("Summary", func(t *testing.T) {
		videos := &fakeVideoSource{video: &models.Video{ID: "dQw4w9WgXcQ"}}
		analyzer, _ := newTestAnalyzer(t, videos, &fakeTranscripts{text: "hello world"})
		summarizer := &fakeSummarizer{summary: "A short summary."}
		analyzer.summarizer = summarizer

		result, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if result.Summary != "A short summary." {
			t.Errorf("Summary = %q", result.Summary)
		}
		data, _ := os.ReadFile(result.FileName)
		if !strings.Contains(string(data), "## Transcript Summary:") {
			t.Error("report should contain the summary section")
		}
	})

	t.Run("SummaryFailureDegrades", func(t *testing.T) {
		videos := &fakeVideoSource{video: &models.Video{ID: "dQw4w9WgXcQ"}}
		analyzer, _ := newTestAnalyzer(t, videos, &fakeTranscripts{text: "hello world"})
		analyzer.summarizer = &fakeSummarizer{err: errors.New("quota exceeded")}

		result, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if result.Summary != "" {
			t.Errorf("Summary = %q, want empty", result.Summary)
		}
	})

	t.Run("NoSummaryWithoutTranscript", func(t *testing.T) {
		videos := &fakeVideoSource{video: &models.Video{ID: "dQw4w9WgXcQ"}}
		analyzer, _ := newTestAnalyzer(t, videos, &fakeTranscripts{err: youtube.ErrTranscriptUnavailable})
		summarizer := &fakeSummarizer{summary: "unused"}
		analyzer.summarizer = summarizer

		if _, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20); err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if summarizer.calls != 0 {
			t.Errorf("Summarize called %d times, want 0", summarizer.calls)
		}
	})

	t.Run("SequentialNames", func(t *testing.T) {
		videos := &fakeVideoSource{video: &models.Video{ID: "dQw4w9WgXcQ"}}
		analyzer, dir := newTestAnalyzer(t, videos, &fakeTranscripts{})

		for i := 1; i <= 2; i++ {
			result, err := analyzer.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 20)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			want := filepath.Join(dir, fmt.Sprintf("competitor-%d.md", i))
			if result.FileName != want {
				t.Errorf("FileName = %s, want %s", result.FileName, want)
			}
		}
	})
}

func TestInitializeKeepsInjectedCollaborators(t *testing.T) {
	cfg := &config.Config{
		Output: config.OutputConfig{Dir: t.TempDir(), Prefix: "competitor"},
	}
	videos := &fakeVideoSource{}
	transcripts := &fakeTranscripts{}

	analyzer := NewYouTubeAnalyzer(cfg)
	analyzer.videos = videos
	analyzer.transcripts = transcripts

	if err := analyzer.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if analyzer.videos != videos || analyzer.transcripts != transcripts {
		t.Error("Initialize replaced injected collaborators")
	}
	if analyzer.store == nil {
		t.Error("Initialize should create the report store")
	}
	if analyzer.summarizer != nil {
		t.Error("summarizer should stay disabled without a Gemini key")
	}
}

func TestInitializeRequiresAPIKey(t *testing.T) {
	analyzer := NewYouTubeAnalyzer(&config.Config{})
	if err := analyzer.Initialize(context.Background()); err == nil {
		t.Error("Expected error when the YouTube API key is empty")
	}
}
