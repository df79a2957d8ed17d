package entity

import (
	"time"
)

// ClusterStatus is the lifecycle state of a research cluster.
type ClusterStatus string

const (
	ClusterStatusPending          ClusterStatus = "pending"
	ClusterStatusProcessing       ClusterStatus = "processing"
	ClusterStatusTranscriptsReady ClusterStatus = "transcripts_ready"
	ClusterStatusCleanedReady     ClusterStatus = "cleaned_ready"
	ClusterStatusCompleted        ClusterStatus = "completed"
	ClusterStatusFailed           ClusterStatus = "failed"
)

// Cluster is the durable state of one research session: the source videos,
// every transcript collected so far, and the synthesized report once ready.
type Cluster struct {
	SessionId          string            `json:"session_id"`
	Name               string            `json:"name"`
	SourceURLs         []string          `json:"source_urls"`
	Status             ClusterStatus     `json:"status"`
	Transcripts        map[string]string `json:"transcripts"`
	CleanedTranscripts map[string]string `json:"cleaned_transcripts"`
	Summary            string            `json:"summary,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NewCluster creates a cluster in processing state with empty transcript maps.
func NewCluster(sessionId, name string, urls []string) *Cluster {
	now := time.Now().UTC()
	return &Cluster{
		SessionId:          sessionId,
		Name:               name,
		SourceURLs:         urls,
		Status:             ClusterStatusProcessing,
		Transcripts:        make(map[string]string),
		CleanedTranscripts: make(map[string]string),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Touch advances UpdatedAt. Call before every Save.
func (c *Cluster) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// Terminal reports whether the status accepts no further transitions.
func (s ClusterStatus) Terminal() bool {
	return s == ClusterStatusCompleted || s == ClusterStatusFailed
}

// CanTransition enforces the forward-only cluster state machine.
// Failed is reachable from any non-terminal state; nothing regresses.
func CanTransition(from, to ClusterStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == ClusterStatusFailed {
		return true
	}
	switch from {
	case ClusterStatusPending:
		return to == ClusterStatusProcessing
	case ClusterStatusProcessing:
		return to == ClusterStatusTranscriptsReady
	case ClusterStatusTranscriptsReady:
		return to == ClusterStatusCleanedReady || to == ClusterStatusCompleted
	case ClusterStatusCleanedReady:
		return to == ClusterStatusCompleted
	default:
		return false
	}
}

// Transition applies a status change when the state machine allows it and
// reports whether it was applied.
func (c *Cluster) Transition(to ClusterStatus) bool {
	if !CanTransition(c.Status, to) {
		return false
	}
	c.Status = to
	c.Touch()
	return true
}

// EffectiveTranscripts returns the cleaned set when the cleaning stage
// produced one, otherwise the raw set.
func (c *Cluster) EffectiveTranscripts() map[string]string {
	if len(c.CleanedTranscripts) > 0 {
		return c.CleanedTranscripts
	}
	return c.Transcripts
}
