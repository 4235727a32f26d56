package youtube

import (
	"regexp"
	"strings"
)

// videoIDPatterns are tried in order; the first capture group of the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID returns the video ID from a watch, short or embed URL.
func ExtractVideoID(url string) (string, error) {
	s := strings.TrimSpace(url)
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", ErrInvalidInput
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
