package report

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndFindVideoArtifacts(t *testing.T) {
	w := NewWriter(t.TempDir())

	require.NoError(t, w.WriteVideoArtifacts("v1", "hello world", "a summary", true))

	transcriptPath, err := w.FindLatestVideoArtifact("v1", "transcript")
	require.NoError(t, err)
	content, err := os.ReadFile(transcriptPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello world")
	assert.Contains(t, string(content), "**Word Count:** 2")
	assert.Contains(t, string(content), "**Cleaned:** true")

	summaryPath, err := w.FindLatestVideoArtifact("v1", "summary")
	require.NoError(t, err)
	content, _ = os.ReadFile(summaryPath)
	assert.Contains(t, string(content), "a summary")
}

func TestFindLatestVideoArtifactMissing(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.FindLatestVideoArtifact("nope", "transcript")
	assert.Error(t, err)
}

func TestWriteAndFindClusterReport(t *testing.T) {
	w := NewWriter(t.TempDir())

	require.NoError(t, w.WriteClusterReport("s1", "Topic A", "the report body", 3))

	path, err := w.FindClusterReport("s1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "session_s1_report.md"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Research Report: Topic A")
	assert.Contains(t, string(content), "**Videos Processed:** 3")
	assert.Contains(t, string(content), "the report body")
}

func TestFindClusterReportMissing(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.FindClusterReport("absent")
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Topic A", "Topic_A"},
		{"ML/AI: a survey!", "MLAI_a_survey"},
		{"already-safe_name", "already-safe_name"},
		{"___", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
