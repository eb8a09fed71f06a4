package jobdesc

import (
	"time"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
)

// JobDescription is a parsed job posting. The raw text is kept alongside
// the structured parse so a posting can be re-parsed after heuristic
// changes without re-uploading.
type JobDescription struct {
	ID kernel.JobDescriptionID `db:"id" json:"id"`

	Title   string `db:"title" json:"title"`
	Company string `db:"company" json:"company,omitempty"`

	RawText string             `db:"raw_text" json:"raw_text,omitempty"`
	Parsed  parse.JDParseResult `db:"parsed" json:"parsed"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RequiredSkills exposes the parsed required-skill list.
func (j *JobDescription) RequiredSkills() []string {
	return j.Parsed.RequiredSkills
}

// PreferredSkills exposes the parsed preferred-skill list.
func (j *JobDescription) PreferredSkills() []string {
	return j.Parsed.PreferredSkills
}
