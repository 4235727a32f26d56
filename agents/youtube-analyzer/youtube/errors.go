package youtube

import "errors"

var (
	// ErrInvalidInput indicates a URL with no recognizable video ID, or an out of range argument.
	ErrInvalidInput = errors.New("invalid YouTube URL")
	// ErrNotFound indicates the API has no video for the ID.
	ErrNotFound = errors.New("video not found")
	// ErrParse indicates a response body that is not valid JSON.
	ErrParse = errors.New("failed to parse response")
	// ErrTransport indicates a connection failure or an error status from the API.
	ErrTransport = errors.New("request failed")
	// ErrTranscriptUnavailable indicates every transcript attempt failed.
	ErrTranscriptUnavailable = errors.New("transcript not available")
)
