package dto

import "time"

type CreateClusterRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=100"`
	URLs             []string `json:"urls" validate:"required,min=1,dive,url"`
	CleanTranscripts bool     `json:"clean_transcripts"`
}

type SynthesizeClusterRequest struct {
	CleanTranscripts bool `json:"clean_transcripts"`
}

// SubmitResponse is returned synchronously for every pipeline submission;
// the result arrives later by polling the task id.
type SubmitResponse struct {
	TaskId    string `json:"task_id"`
	SessionId string `json:"session_id,omitempty"`
}

type ClusterSummaryResponse struct {
	SessionId  string    `json:"session_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	VideoCount int       `json:"video_count"`
	Collected  int       `json:"collected_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
