package candidate

import (
	"time"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
)

// Candidate is the persisted projection of a successful resume parse. It is
// created once from a parse result and only ever re-created (never patched)
// when the same resume is parsed again.
type Candidate struct {
	ID       kernel.CandidateID `db:"id" json:"id"`
	ResumeID kernel.ResumeID    `db:"resume_id" json:"resume_id"`

	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`

	LinkedInURL  string `db:"linkedin_url" json:"linkedin_url,omitempty"`
	GitHubURL    string `db:"github_url" json:"github_url,omitempty"`
	PortfolioURL string `db:"portfolio_url" json:"portfolio_url,omitempty"`

	City    string `db:"city" json:"city,omitempty"`
	State   string `db:"state" json:"state,omitempty"`
	Country string `db:"country" json:"country,omitempty"`

	Headline string `db:"headline" json:"headline,omitempty"`

	Skills         []parse.CandidateSkill      `db:"skills" json:"skills,omitempty"`
	WorkExperience []parse.CandidateExperience `db:"work_experience" json:"work_experience,omitempty"`
	Education      []parse.CandidateEducation  `db:"education" json:"education,omitempty"`

	TotalExperienceYears float64 `db:"total_experience_years" json:"total_experience_years"`
	HighestEducation     string  `db:"highest_education" json:"highest_education,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FromCreate builds a Candidate from the parser's projection record.
func FromCreate(id kernel.CandidateID, resumeID kernel.ResumeID, create *parse.CandidateCreate, totalYears float64, highestEducation string) *Candidate {
	return &Candidate{
		ID:                   id,
		ResumeID:             resumeID,
		FirstName:            create.FirstName,
		LastName:             create.LastName,
		Email:                create.Email,
		Phone:                create.Phone,
		LinkedInURL:          create.LinkedInURL,
		GitHubURL:            create.GitHubURL,
		PortfolioURL:         create.PortfolioURL,
		City:                 create.City,
		State:                create.State,
		Country:              create.Country,
		Headline:             create.Headline,
		Skills:               create.Skills,
		WorkExperience:       create.WorkExperience,
		Education:            create.Education,
		TotalExperienceYears: totalYears,
		HighestEducation:     highestEducation,
		CreatedAt:            time.Now(),
	}
}

// FullName joins first and last name for display.
func (c *Candidate) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// SkillNames returns the flat list of skill names.
func (c *Candidate) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return names
}
