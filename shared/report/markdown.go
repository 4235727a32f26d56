package report

import (
	"fmt"
	"strconv"
	"strings"

	"youtube-analyzer/internal/models"
)

// MaxReportComments caps the comments rendered, whatever was fetched.
const MaxReportComments = 10

const (
	notAvailable       = "N/A"
	noKeywordsText     = "No keywords found"
	noCommentsText     = "Comments not available or disabled for this video"
	publishedDateStyle = "1/2/2006"
)

// noTranscriptText keeps the trailing space after "Show transcript".
const noTranscriptText = "[Transcript not available via automated API]\n\n" +
	"To manually get the transcript:\n" +
	"1. Go to the video on YouTube\n" +
	"2. Click the \"...\" menu below the video\n" +
	"3. Select \"Show transcript\" \n" +
	"4. Copy and paste the transcript text here\n\n" +
	"Alternatively, you can use browser extensions or other tools to extract transcripts."

// Input is everything a report is built from.
type Input struct {
	Video       *models.Video
	OriginalURL string
	Comments    []*models.Comment
	Transcript  string
	Summary     string
}

// BuildMarkdown renders the analysis report. It is a pure function of its input.
func BuildMarkdown(in Input) string {
	video := in.Video
	if video == nil {
		video = &models.Video{}
	}

	var b strings.Builder

	section(&b, "Video Link", in.OriginalURL)
	section(&b, "Video title", video.Title)
	section(&b, "Video Description", video.Description)
	section(&b, "Video Keywords", keywordsText(video))
	section(&b, "Video Statistics", statisticsText(video))
	section(&b, "Top Comments", commentsText(in.Comments))

	transcript := in.Transcript
	if transcript == "" {
		transcript = noTranscriptText
	}
	section(&b, "Transcript", transcript)

	if in.Summary != "" {
		section(&b, "Transcript Summary", in.Summary)
	}

	return b.String()
}

func section(b *strings.Builder, heading, body string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "## %s:\n\n%s\n", heading, body)
}

func keywordsText(video *models.Video) string {
	keywords := video.Tags
	if len(keywords) == 0 {
		keywords = ExtractKeywords(video.Description)
	}
	if len(keywords) == 0 {
		return noKeywordsText
	}
	return strings.Join(keywords, ", ")
}

func statisticsText(video *models.Video) string {
	published := notAvailable
	if !video.PublishedAt.IsZero() {
		published = video.PublishedAt.UTC().Format(publishedDateStyle)
	}

	lines := []string{
		"- Views: " + FormatCount(video.ViewCount),
		"- Likes: " + FormatCount(video.LikeCount),
		"- Comments: " + FormatCount(video.CommentCount),
		"- Published: " + published,
		"- Channel: " + orNA(video.ChannelTitle),
	}
	return strings.Join(lines, "\n")
}

func commentsText(comments []*models.Comment) string {
	if len(comments) == 0 {
		return noCommentsText
	}
	if len(comments) > MaxReportComments {
		comments = comments[:MaxReportComments]
	}

	blocks := make([]string, 0, len(comments))
	for i, c := range comments {
		blocks = append(blocks, fmt.Sprintf("**Comment %d:** %s\n%s\nLikes: %d\n---", i+1, c.Author, c.Text, c.LikeCount))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatCount renders a statistics counter; zero means the API did not report it.
func FormatCount(n int64) string {
	if n == 0 {
		return notAvailable
	}
	return strconv.FormatInt(n, 10)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
