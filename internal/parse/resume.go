package parse

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/hirelens/hirelens/internal/extract"
	"github.com/hirelens/hirelens/internal/textproc"
)

// MaxFileSize caps document input to guard against resource exhaustion.
const MaxFileSize = 50 * 1024 * 1024

// ResumeParseResult is the complete output of the parse pipeline.
type ResumeParseResult struct {
	FilePath string `json:"file_path,omitempty"`
	FileHash string `json:"file_hash,omitempty"`

	Extraction   *extract.ExtractionResult  `json:"extraction,omitempty"`
	Preprocessed *textproc.PreprocessedText `json:"preprocessed,omitempty"`

	Contact        ContactInfo                `json:"contact"`
	Skills         []ExtractedSkill           `json:"skills,omitempty"`
	Experience     []ExtractedExperience      `json:"experience,omitempty"`
	Education      []ExtractedEducation       `json:"education,omitempty"`
	Certifications []ExtractedCertification   `json:"certifications,omitempty"`
	Projects       []ExtractedProject         `json:"projects,omitempty"`
	Summary        SummaryParseResult         `json:"summary"`

	TotalExperienceYears float64 `json:"total_experience_years"`
	HighestEducation     string  `json:"highest_education,omitempty"`
	SkillCount           int     `json:"skill_count"`

	OverallConfidence float64 `json:"overall_confidence"`
	ParseQualityScore float64 `json:"parse_quality_score"`

	ProcessingTimeMS int64    `json:"processing_time_ms"`
	Warnings         []string `json:"warnings,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

// Success reports whether the parse produced usable output: no errors and
// an overall confidence strictly above 0.3.
func (r *ResumeParseResult) Success() bool {
	return len(r.Errors) == 0 && r.OverallConfidence > 0.3
}

// CandidateCreate is the downstream candidate-creation record projected
// from a parse result.
type CandidateCreate struct {
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone,omitempty"`
	LinkedInURL    string                `json:"linkedin_url,omitempty"`
	GitHubURL      string                `json:"github_url,omitempty"`
	PortfolioURL   string                `json:"portfolio_url,omitempty"`
	City           string                `json:"city,omitempty"`
	State          string                `json:"state,omitempty"`
	Country        string                `json:"country,omitempty"`
	Headline       string                `json:"headline,omitempty"`
	Skills         []CandidateSkill      `json:"skills,omitempty"`
	WorkExperience []CandidateExperience `json:"work_experience,omitempty"`
	Education      []CandidateEducation  `json:"education,omitempty"`
}

type CandidateSkill struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

type CandidateExperience struct {
	JobTitle         string     `json:"job_title"`
	Company          string     `json:"company"`
	Location         string     `json:"location,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsCurrent        bool       `json:"is_current"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Achievements     []string   `json:"achievements,omitempty"`
}

type CandidateEducation struct {
	Degree         string     `json:"degree"`
	FieldOfStudy   string     `json:"field_of_study"`
	Institution    string     `json:"institution"`
	Location       string     `json:"location,omitempty"`
	GraduationDate *time.Time `json:"graduation_date,omitempty"`
	GPA            float64    `json:"gpa,omitempty"`
	Honors         string     `json:"honors,omitempty"`
}

// ResumeParser sequences extraction, preprocessing and the field parsers.
// Construct once at startup; the component parsers build static lookup
// tables and are immutable afterwards, so one instance serves all parses.
type ResumeParser struct {
	extractor      *extract.Extractor
	preprocessor   *textproc.Preprocessor
	contact        *ContactParser
	skills         *SkillsParser
	experience     *ExperienceParser
	education      *EducationParser
	certifications *CertificationsParser
	projects       *ProjectsParser
	summary        *SummaryParser
}

func NewResumeParser() *ResumeParser {
	skills := NewSkillsParser()
	return &ResumeParser{
		extractor:      extract.NewExtractor(),
		preprocessor:   textproc.NewPreprocessor(),
		contact:        NewContactParser(),
		skills:         skills,
		experience:     NewExperienceParser(),
		education:      NewEducationParser(),
		certifications: NewCertificationsParser(),
		projects:       NewProjectsParser(skills),
		summary:        NewSummaryParser(),
	}
}

// ParseFile parses a resume document from disk. All failures are reported
// through the result's Errors list, never as a Go error.
func (p *ResumeParser) ParseFile(path string) ResumeParseResult {
	start := time.Now()
	result := ResumeParseResult{FilePath: path}

	info, err := os.Stat(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("file not found: %s", path))
		return finish(result, start)
	}
	if !info.Mode().IsRegular() {
		result.Errors = append(result.Errors, fmt.Sprintf("not a file: %s", path))
		return finish(result, start)
	}
	if info.Size() > MaxFileSize {
		result.Errors = append(result.Errors,
			fmt.Sprintf("file too large: %d bytes (max: %d)", info.Size(), MaxFileSize))
		return finish(result, start)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("read failed: %v", err))
		return finish(result, start)
	}

	return p.parseContent(content, path, result, start)
}

// ParseBytes parses a resume from raw bytes, using the filename only for
// format detection.
func (p *ResumeParser) ParseBytes(content []byte, filename string) ResumeParseResult {
	start := time.Now()
	result := ResumeParseResult{}

	if len(content) > MaxFileSize {
		result.Errors = append(result.Errors,
			fmt.Sprintf("content too large: %d bytes (max: %d)", len(content), MaxFileSize))
		return finish(result, start)
	}

	return p.parseContent(content, filename, result, start)
}

// ParseText parses already-extracted resume text.
func (p *ResumeParser) ParseText(text string) ResumeParseResult {
	start := time.Now()
	result := ResumeParseResult{}
	p.processText(text, &result)
	return finish(result, start)
}

func (p *ResumeParser) parseContent(content []byte, filename string, result ResumeParseResult, start time.Time) ResumeParseResult {
	sum := sha256.Sum256(content)
	result.FileHash = hex.EncodeToString(sum[:])

	extraction := p.extractor.ExtractBytes(content, filename)
	result.Extraction = &extraction

	if !extraction.Success {
		result.Errors = append(result.Errors, "extraction failed: "+extraction.ErrorMessage)
		return finish(result, start)
	}
	if len(extraction.Text) == 0 {
		result.Errors = append(result.Errors, "extracted text is empty")
		return finish(result, start)
	}
	result.Warnings = append(result.Warnings, extraction.Warnings...)

	p.processText(extraction.Text, &result)
	return finish(result, start)
}

func finish(result ResumeParseResult, start time.Time) ResumeParseResult {
	result.ProcessingTimeMS = time.Since(start).Milliseconds()
	return result
}

func (p *ResumeParser) processText(text string, result *ResumeParseResult) {
	pre := p.preprocessor.Preprocess(text)
	result.Preprocessed = pre
	result.Warnings = append(result.Warnings, pre.Warnings...)

	result.Contact = p.contact.Parse(text)

	skillsResult := p.skills.Parse(text, pre.SectionContent(textproc.SectionSkills))
	result.Skills = skillsResult.Skills
	result.SkillCount = len(result.Skills)

	expResult := p.experience.Parse(text, pre.SectionContent(textproc.SectionExperience))
	result.Experience = expResult.Experiences
	result.TotalExperienceYears = expResult.TotalYears

	eduResult := p.education.Parse(text, pre.SectionContent(textproc.SectionEducation))
	result.Education = eduResult.Education
	result.HighestEducation = eduResult.HighestLevel

	certResult := p.certifications.Parse(pre.SectionContent(textproc.SectionCertifications))
	result.Certifications = certResult.Certifications

	projResult := p.projects.Parse(pre.SectionContent(textproc.SectionProjects))
	result.Projects = projResult.Projects

	result.Summary = p.summary.Parse(pre.SectionContent(textproc.SectionSummary))

	result.OverallConfidence = overallConfidence(result)
	result.ParseQualityScore = qualityScore(result)
}

// overallConfidence blends per-domain confidences with fixed weights
// (contact .25, skills .25, experience .30, education .20), renormalized
// over the domains that actually produced output so a resume with no
// education section is not penalized twice.
func overallConfidence(result *ResumeParseResult) float64 {
	type domain struct {
		weight float64
		conf   float64
		has    bool
	}

	domains := []domain{
		{0.25, result.Contact.Confidence, result.Contact.Confidence > 0},
		{0.25, avgSkillConfidence(result.Skills), len(result.Skills) > 0},
		{0.30, avgExperienceConfidence(result.Experience), len(result.Experience) > 0},
		{0.20, avgEducationConfidence(result.Education), len(result.Education) > 0},
	}

	score := 0.0
	totalWeight := 0.0
	for _, d := range domains {
		if !d.has {
			continue
		}
		score += d.weight * d.conf
		totalWeight += d.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return round2(score / totalWeight)
}

func avgSkillConfidence(skills []ExtractedSkill) float64 {
	if len(skills) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range skills {
		sum += s.Confidence
	}
	return sum / float64(len(skills))
}

func avgExperienceConfidence(exps []ExtractedExperience) float64 {
	if len(exps) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range exps {
		sum += e.Confidence
	}
	return sum / float64(len(exps))
}

func avgEducationConfidence(edus []ExtractedEducation) float64 {
	if len(edus) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range edus {
		sum += e.Confidence
	}
	return sum / float64(len(edus))
}

// qualityScore measures extraction coverage: email 0.15, full name 0.10,
// phone 0.05, skills 0.20 (0.10 for 2-4), experience 0.15 + 0.10 for dated
// history, education 0.15 + 0.10 for a ranked level. Capped at 1.0.
func qualityScore(result *ResumeParseResult) float64 {
	score := 0.0

	if result.Contact.Email != "" {
		score += 0.15
	}
	if result.Contact.FirstName != "" && result.Contact.LastName != "" {
		score += 0.10
	}
	if result.Contact.Phone != "" {
		score += 0.05
	}

	switch {
	case len(result.Skills) >= 5:
		score += 0.20
	case len(result.Skills) >= 2:
		score += 0.10
	}

	if len(result.Experience) > 0 {
		score += 0.15
		if result.TotalExperienceYears > 0 {
			score += 0.10
		}
	}

	if len(result.Education) > 0 {
		score += 0.15
		if result.HighestEducation != "" {
			score += 0.10
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return round2(score)
}

// ToCandidateCreate projects a parse result into a candidate-creation
// record. A missing email is the only hard precondition; every other
// required field falls back to an "Unknown" placeholder.
func (p *ResumeParser) ToCandidateCreate(result *ResumeParseResult) (*CandidateCreate, bool) {
	if result.Contact.Email == "" {
		return nil, false
	}

	firstName := result.Contact.FirstName
	if firstName == "" {
		firstName = "Unknown"
	}
	lastName := result.Contact.LastName
	if lastName == "" {
		lastName = "Candidate"
	}

	create := &CandidateCreate{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        result.Contact.Email,
		Phone:        result.Contact.Phone,
		LinkedInURL:  result.Contact.LinkedInURL,
		GitHubURL:    result.Contact.GitHubURL,
		PortfolioURL: result.Contact.PortfolioURL,
		City:         result.Contact.City,
		State:        result.Contact.State,
		Country:      result.Contact.Country,
	}

	for _, s := range result.Skills {
		create.Skills = append(create.Skills, CandidateSkill{
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
		})
	}

	for _, e := range result.Experience {
		jobTitle := e.JobTitle
		if jobTitle == "" {
			jobTitle = "Unknown Position"
		}
		company := e.CompanyName
		if company == "" {
			company = "Unknown Company"
		}
		create.WorkExperience = append(create.WorkExperience, CandidateExperience{
			JobTitle:         jobTitle,
			Company:          company,
			Location:         e.Location,
			StartDate:        e.StartDate,
			EndDate:          e.EndDate,
			IsCurrent:        e.IsCurrent,
			Responsibilities: e.Responsibilities,
			Achievements:     e.Achievements,
		})
	}

	for _, e := range result.Education {
		degree := e.Degree
		if degree == "" {
			degree = e.DegreeLevel
		}
		if degree == "" {
			degree = "Unknown"
		}
		fieldOfStudy := e.FieldOfStudy
		if fieldOfStudy == "" {
			fieldOfStudy = "Unknown"
		}
		institution := e.Institution
		if institution == "" {
			institution = "Unknown Institution"
		}
		create.Education = append(create.Education, CandidateEducation{
			Degree:         degree,
			FieldOfStudy:   fieldOfStudy,
			Institution:    institution,
			Location:       e.Location,
			GraduationDate: e.GraduationDate,
			GPA:            e.GPA,
			Honors:         e.Honors,
		})
	}

	// Headline from the most recent position.
	if len(result.Experience) > 0 && result.Experience[0].JobTitle != "" {
		create.Headline = result.Experience[0].JobTitle
	}

	return create, true
}
