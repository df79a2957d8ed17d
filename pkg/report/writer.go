package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Writer materializes run output as markdown files in the output directory:
// a transcript and a summary per video, one report per cluster. Files are
// timestamped, so re-runs add new artifacts instead of overwriting.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

func (w *Writer) WriteVideoArtifacts(videoId, transcript, summary string, cleaned bool) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	now := time.Now()
	stamp := now.Format("20060102_150405")

	var transcriptDoc strings.Builder
	fmt.Fprintf(&transcriptDoc, "# Transcript: %s\n\n", videoId)
	fmt.Fprintf(&transcriptDoc, "**Generated:** %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&transcriptDoc, "**Word Count:** %d\n", len(strings.Fields(transcript)))
	fmt.Fprintf(&transcriptDoc, "**Character Count:** %d\n", len(transcript))
	fmt.Fprintf(&transcriptDoc, "**Cleaned:** %t\n\n", cleaned)
	fmt.Fprintf(&transcriptDoc, "## Transcript\n\n%s\n", transcript)

	transcriptPath := filepath.Join(w.outputDir, fmt.Sprintf("%s_transcript_%s.md", videoId, stamp))
	if err := os.WriteFile(transcriptPath, []byte(transcriptDoc.String()), 0o644); err != nil {
		return fmt.Errorf("write transcript artifact: %w", err)
	}

	var summaryDoc strings.Builder
	fmt.Fprintf(&summaryDoc, "# Summary: %s\n\n", videoId)
	fmt.Fprintf(&summaryDoc, "**Generated:** %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintf(&summaryDoc, "## Summary\n\n%s\n", summary)

	summaryPath := filepath.Join(w.outputDir, fmt.Sprintf("%s_summary_%s.md", videoId, stamp))
	if err := os.WriteFile(summaryPath, []byte(summaryDoc.String()), 0o644); err != nil {
		return fmt.Errorf("write summary artifact: %w", err)
	}
	return nil
}

func (w *Writer) WriteClusterReport(sessionId, name, report string, videoCount int) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	now := time.Now()

	var doc strings.Builder
	fmt.Fprintf(&doc, "# Research Report: %s\n\n", name)
	fmt.Fprintf(&doc, "**Generated:** %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&doc, "**Session ID:** %s\n", sessionId)
	fmt.Fprintf(&doc, "**Videos Processed:** %d\n\n", videoCount)
	fmt.Fprintf(&doc, "---\n\n%s\n", report)

	filename := fmt.Sprintf("%s_cluster_report_%s.md", SanitizeName(name), now.Format("20060102_150405"))
	path := filepath.Join(w.outputDir, filename)
	if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil {
		return fmt.Errorf("write cluster report: %w", err)
	}

	// Session-keyed marker so the download endpoint finds the report
	// without knowing the cluster name.
	link := filepath.Join(w.outputDir, fmt.Sprintf("session_%s_report.md", sessionId))
	if err := os.WriteFile(link, []byte(doc.String()), 0o644); err != nil {
		return fmt.Errorf("write session report: %w", err)
	}
	return nil
}

// FindLatestVideoArtifact returns the newest transcript or summary artifact
// for a video id. kind is "transcript" or "summary".
func (w *Writer) FindLatestVideoArtifact(videoId, kind string) (string, error) {
	pattern := filepath.Join(w.outputDir, fmt.Sprintf("%s_%s_*.md", videoId, kind))
	return latestMatch(pattern)
}

// FindClusterReport returns the session-keyed report path.
func (w *Writer) FindClusterReport(sessionId string) (string, error) {
	path := filepath.Join(w.outputDir, fmt.Sprintf("session_%s_report.md", sessionId))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("report for session %s: %w", sessionId, err)
	}
	return path, nil
}

func latestMatch(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no artifact matching %s", pattern)
	}
	// Timestamped suffixes sort lexicographically by age.
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// SanitizeName reduces a cluster name to a filesystem-safe slug.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
