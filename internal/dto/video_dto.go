package dto

type ProcessVideoRequest struct {
	URL             string `json:"url" validate:"required,url"`
	CleanTranscript bool   `json:"clean_transcript"`
}
