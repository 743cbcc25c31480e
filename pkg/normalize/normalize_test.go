package normalize

import "testing"

func TestDomain(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"https://www.acme-corp.com/about-us", "acme-corp.com", true},
		{"ACME-CORP.COM", "acme-corp.com", true},
		{"www.acme-corp.com/", "acme-corp.com", true},
		{"http://techflow.io", "techflow.io", true},
		{"acme.com.", "acme.com", true},
		{"nodomain", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := Domain(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Domain(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCountry(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"USA", "United States", true},
		{"us", "United States", true},
		{"u.s.a.", "United States", true},
		{"uk", "United Kingdom", true},
		{"GB", "United Kingdom", true},
		{"great britain", "United Kingdom", true},
		{"france", "France", true},
		{"new zealand", "New Zealand", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Country(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Country(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"(555) 123-4567", "5551234567", true},
		{"+1-555-234-5678", "+15552345678", true},
		{"+44 20 7123 4567", "+442071234567", true},
		{"07700 900123", "07700900123", true},
		{"ext only", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Phone(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Phone(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLinkedIn(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"linkedin.com/in/johndoe", "https://linkedin.com/in/johndoe", true},
		{"https://www.linkedin.com/in/johndoe", "https://linkedin.com/in/johndoe", true},
		{"www.linkedin.com/in/johndoe/", "https://linkedin.com/in/johndoe", true},
		{"https://twitter.com/johndoe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := LinkedIn(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LinkedIn(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"  Sarah.Johnson@ACME.com ", "sarah.johnson@acme.com", true},
		{"no-at-sign", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Email(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Email(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		input, want string
		ok          bool
	}{
		{"jane@acme.com", "acme.com", true},
		{"jane@", "", false},
		{"nodomain", "", false},
	}
	for _, tt := range tests {
		got, ok := EmailDomain(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EmailDomain(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"sarah.johnson@acme.com", true},
		{"valid.user@company.co.uk", true},
		{"test@example.com", false},
		{"info@company.com", false},
		{"admin@acme.com", false},
		{"noreply@acme.com", false},
		{"jane@test.com", false},
		{"jane@localhost", false},
		{"not-an-email", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.input); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Full Name ", "full_name"},
		{"Email Address", "email_address"},
		{"company_name", "company_name"},
		{"Billing  Country", "billing_country"},
	}
	for _, tt := range tests {
		if got := ColumnName(tt.input); got != tt.want {
			t.Errorf("ColumnName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
