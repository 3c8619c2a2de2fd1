package api

import (
	"time"

	"revoice/internal/queue"
)

// SubmitRequest is the payload for creating a dubbing job.
type SubmitRequest struct {
	InputPath      string `json:"input_path"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
}

// JobResponse is the wire form of a job.
type JobResponse struct {
	ID               string    `json:"job_id"`
	Status           string    `json:"status"`
	Progress         int       `json:"progress"`
	Step             string    `json:"step,omitempty"`
	SourceLanguage   string    `json:"source_language,omitempty"`
	TargetLanguage   string    `json:"target_language"`
	DetectedLanguage string    `json:"detected_language,omitempty"`
	OutputPath       string    `json:"output_path,omitempty"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobListResponse wraps a list of jobs.
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// LanguageResponse describes one supported language.
type LanguageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StatusResponse summarizes daemon queue state.
type StatusResponse struct {
	Total      int `json:"total"`
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// ErrorResponse carries a machine-readable failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JobToResponse converts a stored job to its wire form.
func JobToResponse(job *queue.Job) JobResponse {
	return JobResponse{
		ID:               job.ID,
		Status:           string(job.Status),
		Progress:         job.Progress,
		Step:             job.Step,
		SourceLanguage:   job.SourceLanguage,
		TargetLanguage:   job.TargetLanguage,
		DetectedLanguage: job.DetectedLanguage,
		OutputPath:       job.OutputPath,
		Error:            job.ErrorMessage,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}
