package clean

import (
	"strconv"
	"strings"

	"github.com/hazyhaar/crmclean/pkg/normalize"
	"github.com/hazyhaar/crmclean/pkg/record"
)

// cleanAccount normalizes one account row in place and reports whether the
// row is worth keeping. Accounts without a name are invalid.
func cleanAccount(r record.Record) bool {
	if name, ok := r.Get("name"); ok {
		r.Set("name", strings.TrimSpace(name))
	}
	if !r.Present("name") {
		return false
	}

	// Domain is always derived from the website, never trusted from the
	// export directly.
	r.Clear("domain")
	if website, ok := r.Get("website"); ok {
		website = strings.TrimSpace(strings.ToLower(website))
		r.Set("website", website)
		if domain, ok := normalize.Domain(website); ok {
			r.Set("domain", domain)
		}
	}

	if country, ok := r.Get("country"); ok {
		if canonical, ok := normalize.Country(country); ok {
			r.Set("country", canonical)
		} else {
			r.Clear("country")
		}
	}

	if industry, ok := r.Get("industry"); ok {
		r.Set("industry", normalize.Title(strings.TrimSpace(industry)))
	}

	// Employee counts must be integers; anything else becomes null rather
	// than failing the row.
	if count, ok := r.Get("employee_count"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(count)); err == nil {
			r.Set("employee_count", strconv.Itoa(n))
		} else {
			r.Clear("employee_count")
		}
	}

	// The prospect default applies only when the export has no status
	// column at all; that happens after dedup, in the pipeline.
	if status, ok := r.Get("status"); ok {
		r.Set("status", strings.TrimSpace(strings.ToLower(status)))
	}

	return true
}
