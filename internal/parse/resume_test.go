package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Smith
Seattle, WA 98101
john.smith@acme-corp.io
(555) 123-4567

SUMMARY
Senior engineer with nine years building distributed systems and leading platform teams.

SKILLS
Python, Go, PostgreSQL, Kubernetes, Docker

EXPERIENCE
Senior Software Engineer | January 2020 - Present
Acme Corp Inc
• Led migration of billing to microservices and reduced costs by 30%
• Maintained the payments service

EDUCATION
Bachelor of Science in Computer Science, Stanford University
Graduated May 2014

CERTIFICATIONS
AWS Certified Solutions Architect
Amazon Web Services
Issued January 2022
`

func TestResumeParser_ParseText_FullResume(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseText(sampleResume)

	require.Empty(t, result.Errors)
	require.NotNil(t, result.Preprocessed)
	assert.GreaterOrEqual(t, result.ProcessingTimeMS, int64(0))

	assert.Equal(t, "john.smith@acme-corp.io", result.Contact.Email)
	assert.Equal(t, "John Smith", result.Contact.FullName)

	assert.GreaterOrEqual(t, result.SkillCount, 5)

	require.NotEmpty(t, result.Experience)
	assert.True(t, result.Experience[0].IsCurrent)
	assert.Greater(t, result.TotalExperienceYears, 0.0)

	require.NotEmpty(t, result.Education)
	assert.Equal(t, "bachelor", result.HighestEducation)

	require.NotEmpty(t, result.Certifications)
	assert.Equal(t, "AWS Certified Solutions Architect", result.Certifications[0].Name)

	assert.NotEmpty(t, result.Summary.Text)

	assert.Greater(t, result.OverallConfidence, 0.3)
	assert.Greater(t, result.ParseQualityScore, 0.5)
	assert.True(t, result.Success())
}

func TestResumeParser_ParseText_NoFindingsStillStructured(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseText("nothing useful here at all")

	assert.NotNil(t, result.Preprocessed)
	assert.GreaterOrEqual(t, result.ProcessingTimeMS, int64(0))
	assert.Empty(t, result.Errors)
}

func TestResumeParseResult_SuccessBoundary(t *testing.T) {
	atBoundary := ResumeParseResult{OverallConfidence: 0.30}
	assert.False(t, atBoundary.Success())

	aboveBoundary := ResumeParseResult{OverallConfidence: 0.31}
	assert.True(t, aboveBoundary.Success())

	withErrors := ResumeParseResult{
		OverallConfidence: 0.9,
		Errors:            []string{"extraction failed: boom"},
	}
	assert.False(t, withErrors.Success())
}

func TestResumeParser_ParseBytes_TooLarge(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseBytes(make([]byte, MaxFileSize+1), "big.txt")

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "too large")
	assert.False(t, result.Success())
}

func TestResumeParser_ParseBytes_HashAndExtraction(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseBytes([]byte(sampleResume), "resume.txt")

	require.Empty(t, result.Errors)
	assert.Len(t, result.FileHash, 64)
	require.NotNil(t, result.Extraction)
	assert.True(t, result.Extraction.Success)
	assert.Equal(t, "john.smith@acme-corp.io", result.Contact.Email)
}

func TestResumeParser_ParseFile_Missing(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseFile("/does/not/exist.pdf")

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "file not found")
}

func TestResumeParser_ToCandidateCreate_RequiresEmail(t *testing.T) {
	p := NewResumeParser()

	result := ResumeParseResult{OverallConfidence: 0.95}
	create, ok := p.ToCandidateCreate(&result)
	assert.False(t, ok)
	assert.Nil(t, create)
}

func TestResumeParser_ToCandidateCreate_Placeholders(t *testing.T) {
	p := NewResumeParser()

	result := ResumeParseResult{
		Contact:    ContactInfo{Email: "anon@somewhere.net"},
		Experience: []ExtractedExperience{{}},
		Education:  []ExtractedEducation{{}},
	}

	create, ok := p.ToCandidateCreate(&result)
	require.True(t, ok)
	assert.Equal(t, "Unknown", create.FirstName)
	assert.Equal(t, "Candidate", create.LastName)
	require.Len(t, create.WorkExperience, 1)
	assert.Equal(t, "Unknown Position", create.WorkExperience[0].JobTitle)
	assert.Equal(t, "Unknown Company", create.WorkExperience[0].Company)
	require.Len(t, create.Education, 1)
	assert.Equal(t, "Unknown", create.Education[0].Degree)
	assert.Equal(t, "Unknown Institution", create.Education[0].Institution)
}

func TestResumeParser_ToCandidateCreate_FromParse(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseText(sampleResume)
	create, ok := p.ToCandidateCreate(&result)

	require.True(t, ok)
	assert.Equal(t, "John", create.FirstName)
	assert.Equal(t, "Smith", create.LastName)
	assert.Equal(t, "john.smith@acme-corp.io", create.Email)
	assert.Equal(t, "Senior Software Engineer", create.Headline)
	assert.NotEmpty(t, create.Skills)
	assert.NotEmpty(t, create.WorkExperience)
}

func TestOverallConfidence_RenormalizesAcrossContributingDomains(t *testing.T) {
	// Only contact contributed: its confidence carries full weight instead
	// of being diluted by absent domains.
	onlyContact := ResumeParseResult{Contact: ContactInfo{Email: "a@b.co", Confidence: 0.8}}
	assert.Equal(t, 0.8, overallConfidence(&onlyContact))

	// Contact and skills at equal weights average evenly.
	two := ResumeParseResult{
		Contact: ContactInfo{Confidence: 1.0},
		Skills:  []ExtractedSkill{{Name: "Go", Confidence: 0.5}},
	}
	assert.Equal(t, 0.75, overallConfidence(&two))

	empty := ResumeParseResult{}
	assert.Equal(t, 0.0, overallConfidence(&empty))
}

func TestQualityScore_Coverage(t *testing.T) {
	full := ResumeParseResult{
		Contact: ContactInfo{Email: "a@b.co", FirstName: "A", LastName: "B", Phone: "5551234567"},
		Skills: []ExtractedSkill{
			{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
		},
		Experience:           []ExtractedExperience{{}},
		TotalExperienceYears: 3.5,
		Education:            []ExtractedEducation{{}},
		HighestEducation:     "bachelor",
	}
	assert.Equal(t, 1.0, qualityScore(&full))

	sparse := ResumeParseResult{
		Skills: []ExtractedSkill{{Name: "a"}, {Name: "b"}},
	}
	assert.Equal(t, 0.1, qualityScore(&sparse))
}

func TestResumeParser_LongInputDoesNotPanic(t *testing.T) {
	p := NewResumeParser()

	result := p.ParseText(strings.Repeat("filler words without structure ", 5000))
	assert.NotNil(t, result.Preprocessed)
}
