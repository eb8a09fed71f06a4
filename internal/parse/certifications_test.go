package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificationsParser_AWSEntry(t *testing.T) {
	p := NewCertificationsParser()

	result := p.Parse("AWS Certified Solutions Architect\nAmazon Web Services\nIssued January 2022")
	require.Len(t, result.Certifications, 1)

	c := result.Certifications[0]
	assert.Equal(t, "AWS Certified Solutions Architect", c.Name)
	assert.Contains(t, c.Issuer, "Amazon")
	require.NotNil(t, c.IssueDate)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), *c.IssueDate)
	assert.Nil(t, c.ExpiryDate)
}

func TestCertificationsParser_MarkedDatesAndCredential(t *testing.T) {
	p := NewCertificationsParser()

	block := "Certified Kubernetes Administrator\nCNCF\nIssued: March 2023\nExpires: March 2026\nCredential ID: CKA-2023-48291"
	result := p.Parse(block)
	require.Len(t, result.Certifications, 1)

	c := result.Certifications[0]
	assert.Equal(t, "Certified Kubernetes Administrator", c.Name)
	assert.Equal(t, "CNCF", c.Issuer)
	require.NotNil(t, c.IssueDate)
	assert.Equal(t, time.March, c.IssueDate.Month())
	assert.Equal(t, 2023, c.IssueDate.Year())
	require.NotNil(t, c.ExpiryDate)
	assert.Equal(t, 2026, c.ExpiryDate.Year())
	assert.Equal(t, "CKA-2023-48291", c.CredentialID)
	assert.Equal(t, 1.0, c.Confidence)
}

func TestCertificationsParser_BareYearMeansJanuaryFirst(t *testing.T) {
	p := NewCertificationsParser()

	result := p.Parse("CompTIA Security+\n2021")
	require.Len(t, result.Certifications, 1)

	c := result.Certifications[0]
	require.NotNil(t, c.IssueDate)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), *c.IssueDate)
}

func TestCertificationsParser_MultipleBlocks(t *testing.T) {
	p := NewCertificationsParser()

	result := p.Parse("Google Cloud Professional Data Engineer\nIssued 2022\n\nOracle Certified Professional\nIssued 2019")
	require.Len(t, result.Certifications, 2)
	assert.Equal(t, "Google Cloud Professional Data Engineer", result.Certifications[0].Name)
	assert.Equal(t, "Oracle Certified Professional", result.Certifications[1].Name)
}

func TestCertificationsParser_NumberedListNames(t *testing.T) {
	p := NewCertificationsParser()

	result := p.Parse("1. AWS Certified Solutions Architect\n\n2. Certified Kubernetes Administrator")
	require.Len(t, result.Certifications, 2)
	assert.Equal(t, "AWS Certified Solutions Architect", result.Certifications[0].Name)
	assert.Equal(t, "Certified Kubernetes Administrator", result.Certifications[1].Name)
}

func TestCertificationsParser_ConfidenceMonotonicInFields(t *testing.T) {
	nameOnly := ExtractedCertification{Name: "Some Course Certificate"}
	full := ExtractedCertification{
		Name:         "Some Course Certificate",
		Issuer:       "Coursera",
		IssueDate:    timePtr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		CredentialID: "ABCDE-12345",
	}

	assert.Equal(t, 0.4, certConfidence(&nameOnly))
	assert.Equal(t, 1.0, certConfidence(&full))
}

func TestCertificationsParser_EmptyInput(t *testing.T) {
	p := NewCertificationsParser()

	result := p.Parse("   \n\n  ")
	assert.Empty(t, result.Certifications)
	assert.Equal(t, 0.0, result.Confidence)
}
