package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidURL is returned when no video id can be extracted from a source
// reference. This aborts only the one document, never a whole run.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// ErrUnavailable is returned when a video has no retrievable transcript.
var ErrUnavailable = errors.New("transcript not available")

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID pulls the video id out of the common YouTube URL formats.
func ExtractVideoID(sourceURL string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(sourceURL); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidURL, sourceURL)
}

// Client fetches video transcripts from the YouTube timedtext endpoint.
type Client struct {
	BaseURL  string
	Language string
	http     *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:  "https://video.google.com/timedtext",
		Language: "en",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ResolveVideoID satisfies the pipeline source contract.
func (c *Client) ResolveVideoID(sourceURL string) (string, error) {
	return ExtractVideoID(sourceURL)
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript retrieves the caption track for a video and joins it into
// one normalized text blob. Returns ErrUnavailable when the video has no
// caption track.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", c.BaseURL, url.QueryEscape(c.Language), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: video %s", ErrUnavailable, videoID)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext error for %s: status %d", videoID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if len(body) == 0 {
		// Endpoint answers 200 with an empty body when no track exists.
		return "", fmt.Errorf("%w: video %s", ErrUnavailable, videoID)
	}

	var track timedText
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", fmt.Errorf("parse transcript for %s: %w", videoID, err)
	}
	if len(track.Lines) == 0 {
		return "", fmt.Errorf("%w: video %s", ErrUnavailable, videoID)
	}

	parts := make([]string, 0, len(track.Lines))
	for _, line := range track.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return Normalize(strings.Join(parts, " ")), nil
}
