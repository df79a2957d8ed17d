package entity

import (
	"time"
)

// TaskState is the lifecycle state of one asynchronous pipeline run.
type TaskState string

const (
	TaskStatePending   TaskState = "pending"
	TaskStateRunning   TaskState = "running"
	TaskStateSucceeded TaskState = "succeeded"
	TaskStateFailed    TaskState = "failed"
)

// Progress is a snapshot of how far a running task has advanced.
type Progress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Label   string `json:"label"`
}

// TaskResult is the terminal payload of a successful run. Exactly one of
// the cluster fields (SessionId/Report) or the video fields is populated,
// depending on which pipeline produced it.
type TaskResult struct {
	SessionId      string `json:"session_id,omitempty"`
	VideoId        string `json:"video_id,omitempty"`
	Status         string `json:"status,omitempty"`
	ProcessedCount int    `json:"processed_count"`
	TotalCount     int    `json:"total_count"`
	Report         string `json:"report,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	Summary        string `json:"summary,omitempty"`
	WordCount      int    `json:"word_count,omitempty"`
	CharacterCount int    `json:"character_count,omitempty"`
}

// Task is the polling handle returned at submission time.
type Task struct {
	Id        string      `json:"task_id"`
	Label     string      `json:"label"`
	State     TaskState   `json:"state"`
	Progress  *Progress   `json:"progress,omitempty"`
	Result    *TaskResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Terminal reports whether the task reached a final state.
func (s TaskState) Terminal() bool {
	return s == TaskStateSucceeded || s == TaskStateFailed
}
