package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedScanner_CleanTextHasNoFindings(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan("Senior backend engineer with Go and PostgreSQL experience. " +
		"Led a team of five building payment infrastructure.")

	assert.False(t, result.HasProtectedAttributes)
	assert.Empty(t, result.Findings)
	assert.Equal(t, "low", result.RiskLevel)
	assert.Empty(t, result.Recommendations)
}

func TestProtectedScanner_EmptyText(t *testing.T) {
	result := NewProtectedScanner().Scan("")
	assert.False(t, result.HasProtectedAttributes)
	assert.Equal(t, "low", result.RiskLevel)
}

func TestProtectedScanner_DetectsGenderIndicators(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan("Mrs. Jane Roe is on maternity leave. She managed a team of ten.")

	require.True(t, result.HasProtectedAttributes)
	assert.Contains(t, result.AttributeTypes(), AttrGender)

	var titleFound bool
	for _, f := range result.Findings {
		if f.AttributeType == AttrGender && f.Confidence == 0.9 {
			titleFound = true
		}
		assert.Equal(t, f.Indicator, "Mrs. Jane Roe is on maternity leave. She managed a team of ten."[f.Start:f.End])
		assert.NotEmpty(t, f.Context)
	}
	assert.True(t, titleFound)
}

func TestProtectedScanner_SkipsPronounsInQuotedContext(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan(`The manager said "she delivered the project early"`)

	for _, f := range result.Findings {
		assert.NotEqual(t, "she", f.Indicator)
	}
}

func TestProtectedScanner_DetectsExplicitAge(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan("Candidate is 45 years old with two decades of experience.")

	require.True(t, result.HasProtectedAttributes)
	var found *Finding
	for i, f := range result.Findings {
		if f.AttributeType == AttrAge {
			found = &result.Findings[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 0.95, found.Confidence)
}

func TestProtectedScanner_DetectsNationalityAndMaritalStatus(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan("Married with two children. H1B visa holder requiring sponsorship.")

	types := result.AttributeTypes()
	assert.Contains(t, types, AttrMaritalStatus)
	assert.Contains(t, types, AttrNationality)
}

func TestProtectedScanner_RiskLevels(t *testing.T) {
	s := NewProtectedScanner()

	// One low-risk type, confidence 0.75: still medium by the >0.7 rule.
	medium := s.Scan("Recently married and relocated.")
	assert.Equal(t, "medium", medium.RiskLevel)

	// Two high-risk types present.
	high := s.Scan("Active in the local church community. Registered disabled veteran.")
	assert.Equal(t, "high", high.RiskLevel)
}

func TestProtectedScanner_RecommendationsPerType(t *testing.T) {
	s := NewProtectedScanner()

	result := s.Scan("He graduated in 1998 and is a practicing Catholic.")

	types := result.AttributeTypes()
	assert.Contains(t, types, AttrGender)
	assert.Contains(t, types, AttrAge)
	assert.Contains(t, types, AttrReligion)

	// One recommendation per detected type, no duplicates.
	assert.Len(t, result.Recommendations, len(types))
}
