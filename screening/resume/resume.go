package resume

import (
	"time"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
)

// ParsedResume is a stored resume parse. The full pipeline output is kept
// as one payload; derived summary fields are duplicated as columns so lists
// and matching never have to unpack the payload.
type ParsedResume struct {
	ID kernel.ResumeID `db:"id" json:"id"`

	FileName string `db:"file_name" json:"file_name"`
	FilePath string `db:"file_path" json:"file_path,omitempty"`
	FileHash string `db:"file_hash" json:"file_hash,omitempty"`

	CandidateID *kernel.CandidateID `db:"candidate_id" json:"candidate_id,omitempty"`

	Result parse.ResumeParseResult `db:"result" json:"result"`

	OverallConfidence    float64 `db:"overall_confidence" json:"overall_confidence"`
	ParseQualityScore    float64 `db:"parse_quality_score" json:"parse_quality_score"`
	TotalExperienceYears float64 `db:"total_experience_years" json:"total_experience_years"`
	SkillCount           int     `db:"skill_count" json:"skill_count"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CandidateName returns the extracted full name, empty when none was found.
func (r *ParsedResume) CandidateName() string {
	return r.Result.Contact.FullName
}

// Succeeded reports whether the stored parse met the success predicate.
func (r *ParsedResume) Succeeded() bool {
	return r.Result.Success()
}
