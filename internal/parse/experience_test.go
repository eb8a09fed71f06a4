package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoJobsSection = `Senior Software Engineer | January 2020 - January 2021
Acme Corp Inc
San Francisco, CA
• Built data pipelines processing millions of events daily
• Maintained the ingestion service

Software Engineer | February 2018 - February 2019
Globex Corporation
• Improved query latency by 40%`

func TestExperienceParser_ParsesEntries(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", twoJobsSection)
	require.Len(t, result.Experiences, 2)

	first := result.Experiences[0]
	assert.Equal(t, "Senior Software Engineer", first.JobTitle)
	assert.Equal(t, "Acme Corp Inc", first.CompanyName)
	assert.Equal(t, "San Francisco, CA", first.Location)
	require.NotNil(t, first.StartDate)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), *first.StartDate)
	require.NotNil(t, first.EndDate)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), *first.EndDate)
	assert.False(t, first.IsCurrent)

	// "Built" marks an achievement; "Maintained" stays a responsibility.
	assert.Len(t, first.Achievements, 1)
	assert.Len(t, first.Responsibilities, 1)

	second := result.Experiences[1]
	assert.Equal(t, "Software Engineer", second.JobTitle)
	assert.Equal(t, "Globex Corporation", second.CompanyName)
}

func TestExperienceParser_PipeSeparatedHeaderKeepsCleanTitle(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", "Senior Software Engineer | Jan 2020 - Present\nAcme Corp\n• Built the ingestion pipeline")
	require.Len(t, result.Experiences, 1)

	entry := result.Experiences[0]
	assert.Equal(t, "Senior Software Engineer", entry.JobTitle)
	assert.Equal(t, "Acme Corp", entry.CompanyName)
	assert.True(t, entry.IsCurrent)
}

func TestExperienceParser_MostRecentFirst(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", twoJobsSection)
	require.Len(t, result.Experiences, 2)
	assert.True(t, result.Experiences[0].StartDate.After(*result.Experiences[1].StartDate))
}

func TestExperienceParser_TotalYears_TwoTwelveMonthEntries(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", twoJobsSection)
	assert.Equal(t, 2.0, result.TotalYears)
}

func TestExperienceParser_SingleDateMeansCurrent(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", "Staff Engineer since March 2022\nInitech Solutions\n• Led platform reliability work")
	require.Len(t, result.Experiences, 1)

	e := result.Experiences[0]
	assert.True(t, e.IsCurrent)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC), *e.StartDate)
	assert.Nil(t, e.EndDate)
}

func TestExperienceParser_PresentRangeMeansCurrent(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", "Backend Developer | June 2021 - Present\nHooli Inc")
	require.Len(t, result.Experiences, 1)
	assert.True(t, result.Experiences[0].IsCurrent)
	assert.Nil(t, result.Experiences[0].EndDate)
}

func TestExperienceParser_ConfidenceMonotonicInFields(t *testing.T) {
	bare := ExtractedExperience{JobTitle: "Engineer"}
	full := ExtractedExperience{
		JobTitle:    "Engineer",
		CompanyName: "Acme Inc",
		StartDate:   timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		Location:    "Austin, TX",
		Achievements: []string{
			"Launched the reporting pipeline",
		},
	}

	assert.Equal(t, 0.3, experienceConfidence(&bare))
	assert.Equal(t, 1.0, experienceConfidence(&full))
	assert.GreaterOrEqual(t, experienceConfidence(&full), experienceConfidence(&bare))
}

func TestExperienceParser_EmptyInput(t *testing.T) {
	p := NewExperienceParser()

	result := p.Parse("", "")
	assert.Empty(t, result.Experiences)
	assert.Equal(t, 0.0, result.TotalYears)
	assert.Equal(t, 0.0, result.Confidence)
}

func timePtr(t time.Time) *time.Time { return &t }
