// Package normalize holds the pure field normalizers the cleaning pipeline
// applies before scoring and dedup: domain extraction, country expansion,
// phone digit folding, email validation, column name folding. Every function
// is total; an unusable input maps to ("", false) rather than an error.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// countryAliases maps common abbreviations to canonical country names.
var countryAliases = map[string]string{
	"usa":            "United States",
	"us":             "United States",
	"united states":  "United States",
	"u.s.":           "United States",
	"u.s.a.":         "United States",
	"uk":             "United Kingdom",
	"gb":             "United Kingdom",
	"united kingdom": "United Kingdom",
	"u.k.":           "United Kingdom",
	"great britain":  "United Kingdom",
}

var titleCaser = cases.Title(language.English)

// Title capitalizes each word ("software & it services" -> "Software & It
// Services"). Shared by country and industry cleanup.
func Title(s string) string {
	return titleCaser.String(s)
}

// Country expands abbreviations (UK, usa, gb) to canonical names and
// title-cases anything it does not recognize.
func Country(s string) (string, bool) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" {
		return "", false
	}
	if canonical, ok := countryAliases[clean]; ok {
		return canonical, true
	}
	return titleCaser.String(strings.TrimSpace(s)), true
}

// Domain extracts a bare domain from a website URL or domain string:
// https://www.acme-corp.com/about -> acme-corp.com. A string without a dot
// after stripping is not a domain.
func Domain(url string) (string, bool) {
	domain := strings.TrimSpace(strings.ToLower(url))
	if domain == "" {
		return "", false
	}
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.ReplaceAll(domain, "www.", "")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.TrimRight(domain, ".")
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}

// Phone keeps only digits, preserving a leading + for international numbers:
// +1-555-234-5678 -> +15552345678.
func Phone(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	hasPlus := strings.HasPrefix(trimmed, "+")
	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	if hasPlus {
		return "+" + b.String(), true
	}
	return b.String(), true
}

// LinkedIn standardizes profile URLs to https://linkedin.com/...; anything
// not under linkedin.com is rejected.
func LinkedIn(url string) (string, bool) {
	clean := strings.TrimSpace(strings.ToLower(url))
	if clean == "" {
		return "", false
	}
	clean = strings.TrimPrefix(clean, "https://")
	clean = strings.TrimPrefix(clean, "http://")
	clean = strings.ReplaceAll(clean, "www.", "")
	clean = strings.TrimRight(clean, "/")
	if !strings.HasPrefix(clean, "linkedin.com") {
		return "", false
	}
	return "https://" + clean, true
}

// Email lowercases and trims an address. The only structural check at this
// stage is the presence of an @; stricter filtering is ValidEmail's job.
func Email(s string) (string, bool) {
	clean := strings.TrimSpace(strings.ToLower(s))
	if clean == "" || !strings.Contains(clean, "@") {
		return "", false
	}
	return clean, true
}

// EmailDomain returns the part after the last @.
func EmailDomain(email string) (string, bool) {
	i := strings.LastIndexByte(email, '@')
	if i < 0 || i == len(email)-1 {
		return "", false
	}
	return email[i+1:], true
}

var invalidEmailPrefixes = []string{"test@", "example@", "info@", "admin@", "noreply@"}

var invalidEmailDomains = map[string]bool{
	"example.com": true,
	"test.com":    true,
	"localhost":   true,
}

// ValidEmail reports whether an email is worth keeping: structurally an
// address, and neither a role account nor a test domain.
func ValidEmail(email string) bool {
	lower := strings.ToLower(email)
	if !strings.Contains(lower, "@") {
		return false
	}
	for _, prefix := range invalidEmailPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	domain := lower[strings.LastIndexByte(lower, '@')+1:]
	return !invalidEmailDomains[domain]
}

// ColumnName folds a CSV header to snake_case: "Full Name " -> "full_name".
func ColumnName(col string) string {
	clean := strings.ToLower(strings.TrimSpace(col))
	clean = strings.ReplaceAll(clean, " ", "_")
	for strings.Contains(clean, "__") {
		clean = strings.ReplaceAll(clean, "__", "_")
	}
	return clean
}
