package resume

import (
	"time"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
)

// ParseTextRequest runs the pipeline synchronously on already-extracted text.
type ParseTextRequest struct {
	Text     string `json:"text" validate:"required"`
	FileName string `json:"file_name,omitempty"`
}

// ResumeResponse is the full API shape of a stored parse.
type ResumeResponse struct {
	ID          kernel.ResumeID         `json:"id"`
	FileName    string                  `json:"file_name"`
	FileHash    string                  `json:"file_hash,omitempty"`
	CandidateID *kernel.CandidateID     `json:"candidate_id,omitempty"`
	Result      parse.ResumeParseResult `json:"result"`
	Success     bool                    `json:"success"`
	CreatedAt   time.Time               `json:"created_at"`
}

// ResumeSummary is the lightweight list shape.
type ResumeSummary struct {
	ID                   kernel.ResumeID     `json:"id"`
	FileName             string              `json:"file_name"`
	CandidateID          *kernel.CandidateID `json:"candidate_id,omitempty"`
	CandidateName        string              `json:"candidate_name,omitempty"`
	Email                string              `json:"email,omitempty"`
	SkillCount           int                 `json:"skill_count"`
	TotalExperienceYears float64             `json:"total_experience_years"`
	HighestEducation     string              `json:"highest_education,omitempty"`
	OverallConfidence    float64             `json:"overall_confidence"`
	ParseQualityScore    float64             `json:"parse_quality_score"`
	Success              bool                `json:"success"`
	CreatedAt            time.Time           `json:"created_at"`
}

func ToResponse(r *ParsedResume) *ResumeResponse {
	return &ResumeResponse{
		ID:          r.ID,
		FileName:    r.FileName,
		FileHash:    r.FileHash,
		CandidateID: r.CandidateID,
		Result:      r.Result,
		Success:     r.Result.Success(),
		CreatedAt:   r.CreatedAt,
	}
}

func ToSummary(r *ParsedResume) ResumeSummary {
	return ResumeSummary{
		ID:                   r.ID,
		FileName:             r.FileName,
		CandidateID:          r.CandidateID,
		CandidateName:        r.Result.Contact.FullName,
		Email:                r.Result.Contact.Email,
		SkillCount:           r.SkillCount,
		TotalExperienceYears: r.TotalExperienceYears,
		HighestEducation:     r.Result.HighestEducation,
		OverallConfidence:    r.OverallConfidence,
		ParseQualityScore:    r.ParseQualityScore,
		Success:              r.Result.Success(),
		CreatedAt:            r.CreatedAt,
	}
}
