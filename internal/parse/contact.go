package parse

import (
	"regexp"
	"strings"
)

// ContactInfo is the contact data extracted from a resume header.
type ContactInfo struct {
	FirstName    string         `json:"first_name,omitempty"`
	LastName     string         `json:"last_name,omitempty"`
	FullName     string         `json:"full_name,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	LinkedInURL  string         `json:"linkedin_url,omitempty"`
	GitHubURL    string         `json:"github_url,omitempty"`
	PortfolioURL string         `json:"portfolio_url,omitempty"`
	Address      string         `json:"address,omitempty"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty"`
	Country      string         `json:"country,omitempty"`
	PostalCode   string         `json:"postal_code,omitempty"`
	Confidence   float64        `json:"confidence"`
	RawMatches   map[string]any `json:"raw_matches,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	phoneRes = []*regexp.Regexp{
		// US formats
		regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		// International
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
		// General
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	}

	linkedinRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w\-]+/?`)
	githubRe    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w\-]+/?`)
	websiteRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w\-]+\.(?:com|io|dev|me|org|net|co)(?:/[\w\-./]*)?`)
	zipRe       = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	cityStateRe = regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)?)\s*,\s*([A-Z]{2})\b`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// Lines containing these are boilerplate or section headers, never a name.
var nameStopwords = []string{
	"resume", "cv", "curriculum", "vitae", "page", "of",
	"phone", "email", "address", "linkedin", "github",
	"objective", "summary", "experience", "education", "skills",
	"references", "available", "upon", "request",
}

// ContactParser extracts names, emails, phones, profile URLs and location
// from resume text, restricting name and location search to the header
// window to avoid false positives deep in the body.
type ContactParser struct{}

func NewContactParser() *ContactParser {
	return &ContactParser{}
}

// Parse never fails: missing fields simply stay empty and the confidence
// drops.
func (p *ContactParser) Parse(text string) ContactInfo {
	result := ContactInfo{RawMatches: map[string]any{}}

	lines := strings.Split(text, "\n")
	headerLines := lines
	if len(headerLines) > 20 {
		headerLines = headerLines[:20]
	}
	headerText := strings.Join(headerLines, "\n")

	if email := extractEmail(text); email != "" {
		result.Email = email
		result.RawMatches["email"] = email
	}
	if phone := extractPhone(text); phone != "" {
		result.Phone = phone
		result.RawMatches["phone"] = phone
	}
	if linkedin := extractProfileURL(linkedinRe, text); linkedin != "" {
		result.LinkedInURL = linkedin
		result.RawMatches["linkedin"] = linkedin
	}
	if github := extractProfileURL(githubRe, text); github != "" {
		result.GitHubURL = github
		result.RawMatches["github"] = github
	}
	if portfolio := extractPortfolio(text); portfolio != "" {
		result.PortfolioURL = portfolio
		result.RawMatches["portfolio"] = portfolio
	}

	if full, first, last := extractName(headerText); full != "" {
		result.FullName = full
		result.FirstName = first
		result.LastName = last
		result.RawMatches["name"] = full
	}

	p.extractLocation(headerText, &result)

	result.Confidence = contactConfidence(&result)
	return result
}

func extractEmail(text string) string {
	for _, email := range emailRe.FindAllString(text, -1) {
		email = strings.ToLower(email)
		if strings.Contains(email, "example") ||
			strings.Contains(email, "test") ||
			strings.Contains(email, "sample") {
			continue
		}
		return email
	}
	return ""
}

func extractPhone(text string) string {
	for _, re := range phoneRes {
		for _, match := range re.FindAllString(text, -1) {
			digits := nonDigitRe.ReplaceAllString(match, "")
			if len(digits) >= 10 {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

func extractProfileURL(re *regexp.Regexp, text string) string {
	url := re.FindString(text)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}
	return url
}

func extractPortfolio(text string) string {
	skipDomains := []string{
		"linkedin.com", "github.com",
		"google.com", "facebook.com", "twitter.com", "indeed.com",
	}

	for _, url := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(url)
		skip := false
		for _, d := range skipDomains {
			if strings.Contains(lower, d) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}
		return url
	}
	return ""
}

// extractName scans the first header lines for a short capitalized,
// alphabetic-only token sequence that is not boilerplate, a contact line,
// or a stray section header.
func extractName(headerText string) (full, first, last string) {
	lines := strings.Split(headerText, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 50 {
			continue
		}

		lower := strings.ToLower(line)
		if containsAnyWord(lower, nameStopwords) {
			continue
		}
		if emailRe.MatchString(line) || anyPhoneMatch(line) {
			continue
		}
		if strings.Contains(lower, "http") || strings.Contains(lower, ".com") {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 4 {
			continue
		}
		if isAllUpper(line) && len(words) <= 2 {
			continue
		}

		nameLike := true
		for _, w := range words {
			cleaned := strings.NewReplacer("-", "", "'", "").Replace(w)
			if cleaned == "" || !isUpperLetter(rune(w[0])) || !isAlpha(cleaned) {
				nameLike = false
				break
			}
		}
		if !nameLike {
			continue
		}

		full = line
		first = words[0]
		if len(words) > 1 {
			last = words[len(words)-1]
		}
		return full, first, last
	}
	return "", "", ""
}

func (p *ContactParser) extractLocation(headerText string, result *ContactInfo) {
	found := false

	if zip := zipRe.FindString(headerText); zip != "" {
		result.PostalCode = zip
		found = true
	}

	if m := cityStateRe.FindStringSubmatch(headerText); m != nil {
		result.City = m[1]
		result.State = m[2]
		result.Country = "USA"
		found = true
	} else {
		for _, word := range strings.FieldsFunc(headerText, func(r rune) bool {
			return !isUpperLetter(r)
		}) {
			if len(word) == 2 && usStates[word] {
				result.State = word
				result.Country = "USA"
				found = true
				break
			}
		}
	}

	if !found {
		return
	}

	lines := strings.Split(headerText, "\n")
	if len(lines) > 15 {
		lines = lines[:15]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if result.State != "" && strings.Contains(line, result.State) {
			result.Address = line
			break
		}
		if result.PostalCode != "" && strings.Contains(line, result.PostalCode) {
			result.Address = line
			break
		}
	}

	result.RawMatches["location"] = result.Address
}

// contactConfidence is a weighted presence score out of 5: email 1.5,
// name 1.5, phone 1.0, linkedin 0.5, city/state 0.5.
func contactConfidence(info *ContactInfo) float64 {
	score := 0.0
	if info.Email != "" {
		score += 1.5
	}
	if info.Phone != "" {
		score += 1.0
	}
	if info.FullName != "" || (info.FirstName != "" && info.LastName != "") {
		score += 1.5
	}
	if info.LinkedInURL != "" {
		score += 0.5
	}
	if info.City != "" || info.State != "" {
		score += 0.5
	}
	if score > 5.0 {
		score = 5.0
	}
	return score / 5.0
}

func anyPhoneMatch(line string) bool {
	for _, re := range phoneRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !isLowerLetter(r) && !isUpperLetter(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !isUpperLetter(r) && !isLowerLetter(r) {
			return false
		}
	}
	return s != ""
}

func isUpperLetter(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLowerLetter(r rune) bool { return r >= 'a' && r <= 'z' }

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if isLowerLetter(r) {
			return false
		}
		if isUpperLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
