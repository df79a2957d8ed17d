package entity

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ClusterStatus
		to   ClusterStatus
		want bool
	}{
		{"pending to processing", ClusterStatusPending, ClusterStatusProcessing, true},
		{"processing to transcripts_ready", ClusterStatusProcessing, ClusterStatusTranscriptsReady, true},
		{"transcripts_ready to cleaned_ready", ClusterStatusTranscriptsReady, ClusterStatusCleanedReady, true},
		{"transcripts_ready skips clean to completed", ClusterStatusTranscriptsReady, ClusterStatusCompleted, true},
		{"cleaned_ready to completed", ClusterStatusCleanedReady, ClusterStatusCompleted, true},
		{"any live state can fail", ClusterStatusProcessing, ClusterStatusFailed, true},
		{"no backward step", ClusterStatusTranscriptsReady, ClusterStatusProcessing, false},
		{"no stage skipping", ClusterStatusProcessing, ClusterStatusCompleted, false},
		{"completed is final", ClusterStatusCompleted, ClusterStatusFailed, false},
		{"failed is final", ClusterStatusFailed, ClusterStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTransitionRejectedLeavesStatus(t *testing.T) {
	c := NewCluster("s1", "Topic", []string{"u1"})
	if c.Transition(ClusterStatusCompleted) {
		t.Fatal("processing must not jump straight to completed")
	}
	if c.Status != ClusterStatusProcessing {
		t.Errorf("status = %s, want processing", c.Status)
	}
}

func TestEffectiveTranscripts(t *testing.T) {
	c := NewCluster("s1", "Topic", []string{"u1"})
	c.Transcripts["v1"] = "raw"

	if got := c.EffectiveTranscripts()["v1"]; got != "raw" {
		t.Errorf("EffectiveTranscripts()[v1] = %q, want raw", got)
	}

	c.CleanedTranscripts["v1"] = "clean"
	if got := c.EffectiveTranscripts()["v1"]; got != "clean" {
		t.Errorf("EffectiveTranscripts()[v1] = %q, want clean", got)
	}
}
