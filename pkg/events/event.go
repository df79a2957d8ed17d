package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CLUSTER_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewClusterCompleted announces a finished synthesis run.
func NewClusterCompleted(sessionId, name string, processed, total int) Event {
	return BaseEvent{
		Type: "CLUSTER_COMPLETED",
		Data: map[string]interface{}{
			"session_id":      sessionId,
			"name":            name,
			"processed_count": processed,
			"total_count":     total,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewClusterFailed announces a run that sank.
func NewClusterFailed(sessionId, name, reason string) Event {
	return BaseEvent{
		Type: "CLUSTER_FAILED",
		Data: map[string]interface{}{
			"session_id": sessionId,
			"name":       name,
			"reason":     reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewVideoProcessed announces a completed single-video summary.
func NewVideoProcessed(videoId string, wordCount int) Event {
	return BaseEvent{
		Type: "VIDEO_PROCESSED",
		Data: map[string]interface{}{
			"video_id":   videoId,
			"word_count": wordCount,
		},
		OccurredAt: time.Now().UTC(),
	}
}
