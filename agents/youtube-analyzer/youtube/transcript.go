package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Segment is one timed caption entry.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// CaptionFetcher returns the caption segments of a video. An empty lang means
// no language constraint.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, videoID, lang string) ([]Segment, error)
}

var errNoSegments = errors.New("no transcript content found")

type TranscriptClient struct {
	fetcher           CaptionFetcher
	preferredLanguage string
}

func NewTranscriptClient(fetcher CaptionFetcher, preferredLanguage string) *TranscriptClient {
	return &TranscriptClient{
		fetcher:           fetcher,
		preferredLanguage: preferredLanguage,
	}
}

// attempts lists the languages to try, in order.
func (t *TranscriptClient) attempts() []string {
	if t.preferredLanguage == "" {
		return []string{""}
	}
	return []string{t.preferredLanguage, ""}
}

// FetchTranscript returns the video's captions joined into one string. The
// preferred language is tried first, then any language. When every attempt
// fails the error wraps ErrTranscriptUnavailable with the first failure's message.
func (t *TranscriptClient) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	log.Printf("Attempting to fetch transcript for video ID: %s", videoID)

	var firstErr error
	for i, lang := range t.attempts() {
		if i > 0 {
			log.Println("Trying to fetch transcript without language specification...")
		}

		segments, err := t.fetcher.FetchCaptions(ctx, videoID, lang)
		if err == nil && len(segments) == 0 {
			err = errNoSegments
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			} else {
				log.Printf("Fallback also failed: %v", err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		text := joinSegments(segments)
		log.Printf("Successfully fetched transcript (%d characters)", len(text))
		return text, nil
	}

	return "", fmt.Errorf("%w: %s", ErrTranscriptUnavailable, firstErr.Error())
}

func joinSegments(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}
