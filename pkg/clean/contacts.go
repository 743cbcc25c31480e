package clean

import (
	"strings"

	"github.com/hazyhaar/crmclean/pkg/normalize"
	"github.com/hazyhaar/crmclean/pkg/record"
)

// cleanContact normalizes one contact row in place and reports whether the
// row is worth keeping. Rows without a valid, non-generic email are invalid.
func cleanContact(r record.Record) bool {
	email, _ := r.Get("email")
	cleaned, ok := normalize.Email(email)
	if !ok || !normalize.ValidEmail(cleaned) {
		return false
	}
	r.Set("email", cleaned)

	// email_domain is always derived, never trusted from the export.
	r.Clear("email_domain")
	if domain, ok := normalize.EmailDomain(cleaned); ok {
		r.Set("email_domain", domain)
	}

	if name, ok := r.Get("full_name"); ok {
		r.Set("full_name", strings.TrimSpace(name))
	}

	// The title column uses "N/A" as its null marker in some exports;
	// drop it rather than letting the sentinel reach the output.
	if raw, ok := r.Raw("title"); ok && strings.TrimSpace(raw) == record.NA {
		r.Clear("title")
	} else if title, ok := r.Get("title"); ok {
		r.Set("title", strings.TrimSpace(title))
	}

	if country, ok := r.Get("country"); ok {
		if canonical, ok := normalize.Country(country); ok {
			r.Set("country", canonical)
		} else {
			r.Clear("country")
		}
	}

	if phone, ok := r.Get("phone"); ok {
		if cleaned, ok := normalize.Phone(phone); ok {
			r.Set("phone", cleaned)
		} else {
			r.Clear("phone")
		}
	}

	if linkedin, ok := r.Get("linkedin"); ok {
		if cleaned, ok := normalize.LinkedIn(linkedin); ok {
			r.Set("linkedin", cleaned)
		} else {
			r.Clear("linkedin")
		}
	}

	return true
}
