package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultWatchURL = "https://www.youtube.com/watch"
	browserUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxTimedTextLen = 2 * 1024 * 1024
)

var captionTracksRE = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// CaptionScraper reads caption tracks from the public watch page, so it needs
// no API credentials.
type CaptionScraper struct {
	httpClient *http.Client
	watchURL   string
}

func NewCaptionScraper(timeout time.Duration) *CaptionScraper {
	return &CaptionScraper{
		httpClient: &http.Client{Timeout: timeout},
		watchURL:   defaultWatchURL,
	}
}

// FetchCaptions implements CaptionFetcher.
func (s *CaptionScraper) FetchCaptions(ctx context.Context, videoID, lang string) ([]Segment, error) {
	tracks, err := s.fetchCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, lang)
	if !ok {
		return nil, fmt.Errorf("could not find captions for language %q", lang)
	}

	return s.fetchTimedText(ctx, track.BaseURL)
}

func (s *CaptionScraper) fetchCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	query := url.Values{}
	query.Set("v", videoID)
	query.Set("hl", "en")

	resp, err := s.get(ctx, s.watchURL+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		if m := captionTracksRE.FindStringSubmatch(script.Text()); len(m) == 2 {
			raw = m[1]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, fmt.Errorf("could not find captions for video: %s", videoID)
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks for video: %s", videoID)
	}
	return tracks, nil
}

// pickTrack returns the first track when lang is empty, otherwise an exact
// language match followed by a regional variant (lang "en" accepts "en-GB").
func pickTrack(tracks []captionTrack, lang string) (captionTrack, bool) {
	if len(tracks) == 0 {
		return captionTrack{}, false
	}
	if lang == "" {
		return tracks[0], true
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, lang+"-") {
			return t, true
		}
	}
	return captionTrack{}, false
}

func (s *CaptionScraper) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	resp, err := s.get(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextLen))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(line.Start, 64)
		dur, _ := strconv.ParseFloat(line.Dur, 64)
		segments = append(segments, Segment{Text: text, Start: start, Duration: dur})
	}
	return segments, nil
}

// cleanCaptionText decodes the HTML entities left after XML decoding and
// strips inline markup such as <font> tags.
func cleanCaptionText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func (s *CaptionScraper) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New(resp.Status)
	}
	return resp, nil
}
