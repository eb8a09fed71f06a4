package jobdesc

import (
	"time"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
)

// CreateJobDescriptionRequest creates a job description from raw text.
// Title and Company override what the parser extracts when provided.
type CreateJobDescriptionRequest struct {
	Text    string `json:"text" validate:"required"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// JobDescriptionResponse is the API shape of a stored job description.
type JobDescriptionResponse struct {
	ID         kernel.JobDescriptionID `json:"id"`
	Title      string                  `json:"title"`
	Company    string                  `json:"company,omitempty"`
	Parsed     parse.JDParseResult     `json:"parsed"`
	Confidence float64                 `json:"confidence"`
	CreatedAt  time.Time               `json:"created_at"`
}

// JobDescriptionSummary is the lightweight list shape.
type JobDescriptionSummary struct {
	ID              kernel.JobDescriptionID `json:"id"`
	Title           string                  `json:"title"`
	Company         string                  `json:"company,omitempty"`
	RequiredSkills  []string                `json:"required_skills,omitempty"`
	ExperienceLevel string                  `json:"experience_level,omitempty"`
	Location        string                  `json:"location,omitempty"`
	Confidence      float64                 `json:"confidence"`
	CreatedAt       time.Time               `json:"created_at"`
}

func ToResponse(j *JobDescription) *JobDescriptionResponse {
	return &JobDescriptionResponse{
		ID:         j.ID,
		Title:      j.Title,
		Company:    j.Company,
		Parsed:     j.Parsed,
		Confidence: j.Parsed.Confidence,
		CreatedAt:  j.CreatedAt,
	}
}

func ToSummary(j *JobDescription) JobDescriptionSummary {
	return JobDescriptionSummary{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		RequiredSkills:  j.Parsed.RequiredSkills,
		ExperienceLevel: j.Parsed.ExperienceLevel,
		Location:        j.Parsed.Location,
		Confidence:      j.Parsed.Confidence,
		CreatedAt:       j.CreatedAt,
	}
}
