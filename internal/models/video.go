package models

import "time"

// Video is the snippet and statistics of a single YouTube video.
// Counts are zero when the API omits them.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags,omitempty"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	URL          string    `json:"url"`
}

// Comment is the top-level comment of a comment thread.
type Comment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
}

type AnalysisResult struct {
	FileName   string     `json:"file_name"`
	Video      *Video     `json:"video"`
	Comments   []*Comment `json:"comments"`
	Transcript string     `json:"transcript"`
	Summary    string     `json:"summary,omitempty"`
}
