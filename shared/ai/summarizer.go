package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/config"

	"google.golang.org/genai"
)

// ErrEmptyTranscript is returned when there is nothing to summarize.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Summarizer condenses a video transcript with Gemini.
type Summarizer struct {
	client             *genai.Client
	model              string
	maxTranscriptChars int
}

func NewSummarizer(ctx context.Context, cfg *config.AIConfig) (*Summarizer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Summarizer{
		client:             client,
		model:              cfg.Model,
		maxTranscriptChars: cfg.MaxTranscriptChars,
	}, nil
}

// Summarize returns a short markdown summary of the transcript.
func (s *Summarizer) Summarize(ctx context.Context, video *models.Video, transcript string) (string, error) {
	if video == nil {
		return "", fmt.Errorf("video cannot be nil")
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	parts := []*genai.Part{
		genai.NewPartFromText(buildSummaryPrompt(video, transcript, s.maxTranscriptChars)),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to summarize transcript for video %s: %w", video.ID, err)
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", fmt.Errorf("no summary received for video %s", video.ID)
	}

	return summary, nil
}

func buildSummaryPrompt(video *models.Video, transcript string, maxChars int) string {
	return fmt.Sprintf(`You are an assistant that summarizes YouTube videos for competitor research.

VIDEO METADATA:
Title: %s
Channel: %s

TRANSCRIPT:
%s

INSTRUCTIONS:
1. Summarize the video in 3-5 sentences
2. Follow with a bullet list of the key points, at most 7 bullets
3. Use plain markdown without headings`,
		video.Title,
		video.ChannelTitle,
		truncateString(transcript, maxChars),
	)
}

// truncateString cuts s to at most maxLength runes; a non-positive limit keeps s whole.
func truncateString(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + "..."
}
