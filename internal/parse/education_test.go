package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducationParser_FullEntry(t *testing.T) {
	p := NewEducationParser()

	section := "Bachelor of Science in Computer Science, Stanford University\nGraduated May 2018\nGPA: 3.8/4.0, magna cum laude"
	result := p.Parse("", section)

	require.Len(t, result.Education, 1)
	e := result.Education[0]

	assert.Contains(t, e.Degree, "Bachelor of Science")
	assert.Equal(t, "bachelor", e.DegreeLevel)
	assert.Equal(t, "Computer Science", e.FieldOfStudy)
	assert.Contains(t, e.Institution, "Stanford University")
	require.NotNil(t, e.GraduationDate)
	assert.Equal(t, time.Date(2018, time.May, 1, 0, 0, 0, 0, time.UTC), *e.GraduationDate)
	assert.Equal(t, 3.8, e.GPA)
	assert.Equal(t, "magna cum laude", e.Honors)
	assert.Equal(t, 1.0, e.Confidence)

	assert.Equal(t, "bachelor", result.HighestLevel)
}

func TestEducationParser_GPARescaledToFourPointScale(t *testing.T) {
	p := NewEducationParser()

	result := p.Parse("", "Bachelor of Engineering, Delhi Institute of Technology\nGPA: 8.5/10")
	require.Len(t, result.Education, 1)
	assert.Equal(t, 3.4, result.Education[0].GPA)
}

func TestEducationParser_ExpectedGraduationDefaultsToMay(t *testing.T) {
	p := NewEducationParser()

	result := p.Parse("", "Master of Science, MIT College of Engineering\nExpected graduation 2026")
	require.Len(t, result.Education, 1)

	e := result.Education[0]
	require.NotNil(t, e.GraduationDate)
	assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), *e.GraduationDate)
}

func TestEducationParser_HighestLevelRanking(t *testing.T) {
	p := NewEducationParser()

	section := "Master of Science in Data Science, Columbia University\nGraduated 2020\n\nBachelor of Arts in Economics, Reed College\nGraduated 2016"
	result := p.Parse("", section)

	require.Len(t, result.Education, 2)
	assert.Equal(t, "master", result.HighestLevel)
	// Most recent graduation first.
	assert.Equal(t, "master", result.Education[0].DegreeLevel)
}

func TestEducationLevelRank_Ordering(t *testing.T) {
	assert.Greater(t, EducationLevelRank["phd"], EducationLevelRank["master"])
	assert.Equal(t, EducationLevelRank["mba"], EducationLevelRank["master"])
	assert.Equal(t, EducationLevelRank["doctorate"], EducationLevelRank["phd"])
	assert.Greater(t, EducationLevelRank["bachelor"], EducationLevelRank["associate"])
	assert.Greater(t, EducationLevelRank["associate"], EducationLevelRank["diploma"])
	assert.Greater(t, EducationLevelRank["diploma"], EducationLevelRank["high school"])
}

func TestEducationParser_ConfidenceMonotonicInFields(t *testing.T) {
	bare := ExtractedEducation{DegreeLevel: "bachelor"}
	full := ExtractedEducation{
		Degree:         "Bachelor of Science",
		DegreeLevel:    "bachelor",
		FieldOfStudy:   "Physics",
		Institution:    "Caltech",
		GraduationDate: timePtr(time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)),
		GPA:            3.9,
		Honors:         "summa cum laude",
	}

	assert.Equal(t, 0.3, educationConfidence(&bare))
	assert.Equal(t, 1.0, educationConfidence(&full))
}

func TestEducationParser_EmptyInput(t *testing.T) {
	p := NewEducationParser()

	result := p.Parse("", "")
	assert.Empty(t, result.Education)
	assert.Empty(t, result.HighestLevel)
	assert.Equal(t, 0.0, result.Confidence)
}
