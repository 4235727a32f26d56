package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"youtube-analyzer/internal/models"
	"youtube-analyzer/shared/config"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MaxCommentResults is the largest page the commentThreads endpoint accepts.
const MaxCommentResults = 100

type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
}

// NewClient creates a Data API client authenticated with the configured API key.
// Extra options are appended after the key, so tests can point it at a fake endpoint.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
	}, nil
}

// GetVideo fetches the snippet and statistics of one video.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyError("video info", err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, videoID)
	}

	return videoFromItem(resp.Items[0]), nil
}

// GetComments fetches up to maxResults top-level comments ordered by relevance.
// A response without items yields an empty slice.
func (c *Client) GetComments(ctx context.Context, videoID string, maxResults int64) ([]*models.Comment, error) {
	if maxResults < 1 || maxResults > MaxCommentResults {
		return nil, fmt.Errorf("%w: comment count must be between 1 and %d, got %d", ErrInvalidInput, MaxCommentResults, maxResults)
	}

	resp, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(maxResults).
		Order("relevance").
		TextFormat("plainText").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyError("comments", err)
	}

	comments := make([]*models.Comment, 0, len(resp.Items))
	for _, thread := range resp.Items {
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := thread.Snippet.TopLevelComment.Snippet
		comments = append(comments, &models.Comment{
			Author:    snippet.AuthorDisplayName,
			Text:      snippet.TextDisplay,
			LikeCount: snippet.LikeCount,
		})
		if int64(len(comments)) >= maxResults {
			break
		}
	}

	return comments, nil
}

func videoFromItem(item *youtube.Video) *models.Video {
	video := &models.Video{
		ID:  item.Id,
		URL: WatchURL(item.Id),
	}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.Tags = item.Snippet.Tags
		video.ChannelTitle = item.Snippet.ChannelTitle
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		} else if item.Snippet.PublishedAt != "" {
			log.Printf("Warning: unparseable publish date %q for video %s", item.Snippet.PublishedAt, item.Id)
		}
	}

	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}

	return video
}

// classifyError maps a Data API call error onto the package's sentinel errors.
func classifyError(what string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s: %v", ErrTransport, what, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrParse, what, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, what, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrTransport, what, err)
}
