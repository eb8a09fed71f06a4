package parse

import (
	"regexp"
	"strings"
	"time"
)

// ExtractedCertification is one certification entry.
type ExtractedCertification struct {
	Name          string     `json:"name,omitempty"`
	Issuer        string     `json:"issuer,omitempty"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CredentialID  string     `json:"credential_id,omitempty"`
	CredentialURL string     `json:"credential_url,omitempty"`
	Confidence    float64    `json:"confidence"`
}

// CertificationsParseResult is the output of the certifications parser.
type CertificationsParseResult struct {
	Certifications []ExtractedCertification `json:"certifications"`
	Confidence     float64                  `json:"confidence"`
}

var knownCertProviders = []string{
	"AWS", "Amazon", "Google", "Microsoft", "Azure",
	"Cisco", "CompTIA", "PMI", "Salesforce", "Oracle",
	"Red Hat", "HashiCorp", "CNCF", "ISC2", "ISACA",
	"EC-Council", "Scrum Alliance", "Coursera", "Udacity",
	"LinkedIn Learning", "edX", "Pluralsight", "SANS",
}

var (
	credentialIDRe = regexp.MustCompile(`(?i)(?:credential\s*(?:id|#)?|cert(?:ificate)?\s*(?:id|#))\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-]{4,28})`)

	credentialURLRe = regexp.MustCompile(`(?i)https?://[\w\-./?=#&%+]+(?:verify|credential|certificate)[\w\-./?=#&%+]*`)

	expiryMarkerRe = regexp.MustCompile(`(?i)(?:expir(?:es?|y)|valid\s*(?:until|through)|renewal\s*(?:date)?)\s*[:\-]?\s*`)
	issueMarkerRe  = regexp.MustCompile(`(?i)(?:issued?|obtained|earned|awarded|completed)\s*[:\-]?\s*`)

	certBlockSplitRe  = regexp.MustCompile(`\n\s*\n`)
	certBulletStripRe = regexp.MustCompile(`^\s*[\d.)\-•*]+\s*`)
)

// CertificationsParser extracts certification entries from a dedicated
// certifications section. It only works on a section; there is no full-text
// fallback because bare text produces too many false positives.
type CertificationsParser struct{}

func NewCertificationsParser() *CertificationsParser {
	return &CertificationsParser{}
}

func (p *CertificationsParser) Parse(sectionText string) CertificationsParseResult {
	if strings.TrimSpace(sectionText) == "" {
		return CertificationsParseResult{}
	}

	var certs []ExtractedCertification
	for _, block := range certBlockSplitRe.Split(strings.TrimSpace(sectionText), -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		cert := parseCertBlock(block)
		if cert.Name == "" {
			continue
		}
		certs = append(certs, cert)
	}

	confidence := 0.0
	if len(certs) > 0 {
		sum := 0.0
		for _, c := range certs {
			sum += c.Confidence
		}
		confidence = round2(sum / float64(len(certs)))
	}

	return CertificationsParseResult{Certifications: certs, Confidence: confidence}
}

func parseCertBlock(block string) ExtractedCertification {
	cert := ExtractedCertification{}

	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return cert
	}

	// Name is the first line, bullets and numbering stripped.
	first := strings.TrimSpace(certBulletStripRe.ReplaceAllString(lines[0], ""))
	if first != "" && len(first) <= 80 {
		cert.Name = first
	}

	cert.Issuer = detectCertIssuer(block, lines)

	cert.ExpiryDate = extractMarkedDate(block, expiryMarkerRe)
	cert.IssueDate = extractMarkedDate(block, issueMarkerRe)

	// Unmarked dates: first is the issue date, a second one the expiry.
	if cert.IssueDate == nil && cert.ExpiryDate == nil {
		if dates := dateRe.FindAllString(block, -1); len(dates) > 0 {
			cert.IssueDate = parseCertDate(dates[0])
			if len(dates) > 1 {
				cert.ExpiryDate = parseCertDate(dates[1])
			}
		}
	}

	if m := credentialIDRe.FindStringSubmatch(block); m != nil {
		cert.CredentialID = m[1]
	}
	if m := credentialURLRe.FindString(block); m != "" {
		cert.CredentialURL = m
	}

	cert.Confidence = certConfidence(&cert)
	return cert
}

func nonEmptyLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func extractMarkedDate(block string, marker *regexp.Regexp) *time.Time {
	loc := marker.FindStringIndex(block)
	if loc == nil {
		return nil
	}
	if m := dateRe.FindString(block[loc[1]:]); m != "" {
		return parseCertDate(m)
	}
	return nil
}

// detectCertIssuer prefers a standalone issuer line below the name ("Amazon
// Web Services") over a provider acronym embedded in the name itself.
func detectCertIssuer(block string, lines []string) string {
	for _, line := range lines[1:] {
		if len(line) > 60 || dateRe.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, provider := range knownCertProviders {
			if findWholeWord(lower, strings.ToLower(provider)) >= 0 {
				return line
			}
		}
	}

	lower := strings.ToLower(block)
	for _, provider := range knownCertProviders {
		if findWholeWord(lower, strings.ToLower(provider)) >= 0 {
			return provider
		}
	}
	return ""
}

// parseCertDate resolves to the first of the month; a bare year means
// January 1 of that year.
func parseCertDate(s string) *time.Time {
	s = strings.Trim(strings.TrimSpace(s), ".,")
	return parseLooseDate(s)
}

// certConfidence: name 0.4, issuer 0.3, issue date 0.2, credential id or
// url 0.1.
func certConfidence(cert *ExtractedCertification) float64 {
	score := 0.0
	if cert.Name != "" {
		score += 0.4
	}
	if cert.Issuer != "" {
		score += 0.3
	}
	if cert.IssueDate != nil {
		score += 0.2
	}
	if cert.CredentialID != "" || cert.CredentialURL != "" {
		score += 0.1
	}
	return round2(score)
}
