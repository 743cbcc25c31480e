package dedup

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/crmclean/pkg/record"
)

var accountFields = []string{"name", "domain", "industry", "employee_count", "country"}
var contactFields = []string{"full_name", "email", "title", "phone", "linkedin"}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		rec  record.Record
		want int
	}{
		{"full", record.Record{"name": "Acme", "domain": "acme.com", "industry": "Tech", "employee_count": "50", "country": "United States"}, 5},
		{"partial", record.Record{"name": "Acme", "domain": "acme.com"}, 2},
		{"empty and sentinel ignored", record.Record{"name": "Acme", "industry": "", "country": "N/A"}, 1},
		{"nothing", record.Record{}, 0},
		{"unknown fields ignored", record.Record{"nickname": "ACME"}, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.rec, accountFields); got != tt.want {
			t.Errorf("%s: Score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDomainThenNameDisjoint(t *testing.T) {
	withDomain := record.Record{"name": "Acme", "domain": "acme.com"}
	nameOnly := record.Record{"name": "acme.com"}

	k1 := DomainThenName(withDomain)
	k2 := DomainThenName(nameOnly)
	if k1.Kind != "domain" || k2.Kind != "name" {
		t.Fatalf("kinds = %q, %q", k1.Kind, k2.Kind)
	}
	// Same string value, different key space: never the same group.
	if k1 == k2 {
		t.Error("domain key and name key must not collide")
	}
}

func TestDomainThenNameLowercasesName(t *testing.T) {
	a := DomainThenName(record.Record{"name": "Beta Labs"})
	b := DomainThenName(record.Record{"name": "BETA LABS"})
	if a != b {
		t.Errorf("lowercased name keys differ: %v vs %v", a, b)
	}
	// Only casing is folded: accented names stay distinct entities.
	c := DomainThenName(record.Record{"name": "Café"})
	d := DomainThenName(record.Record{"name": "Cafe"})
	if c == d {
		t.Error("accented and unaccented names must not collide")
	}
}

func TestResolverFor(t *testing.T) {
	for _, strategy := range []string{"domain_then_name", "email"} {
		if _, err := ResolverFor(strategy); err != nil {
			t.Errorf("ResolverFor(%q): %v", strategy, err)
		}
	}
	if _, err := ResolverFor("soundex"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestDeduplicateAccounts(t *testing.T) {
	// The more complete record wins regardless of position.
	records := []record.Record{
		{"name": "Acme", "domain": "acme.com", "industry": "Tech"},
		{"name": "Acme Inc", "domain": "acme.com"},
	}
	res := Deduplicate(records, DomainThenName, accountFields)
	if len(res.Survivors) != 1 || res.Removed != 1 {
		t.Fatalf("survivors=%d removed=%d", len(res.Survivors), res.Removed)
	}
	if name, _ := res.Survivors[0].Get("name"); name != "Acme" {
		t.Errorf("survivor = %q, want the higher-scoring record", name)
	}
}

func TestDeduplicateContacts(t *testing.T) {
	records := []record.Record{
		{"email": "a@x.com"},
		{"email": "a@x.com", "full_name": "Jane Doe"},
	}
	res := Deduplicate(records, ByEmail, contactFields)
	if len(res.Survivors) != 1 || res.Removed != 1 {
		t.Fatalf("survivors=%d removed=%d", len(res.Survivors), res.Removed)
	}
	if name, _ := res.Survivors[0].Get("full_name"); name != "Jane Doe" {
		t.Errorf("survivor full_name = %q, want Jane Doe", name)
	}
}

func TestTieBreakFirstSeen(t *testing.T) {
	records := []record.Record{
		{"name": "A Inc", "domain": "a.com"},
		{"name": "A Incorporated", "domain": "a.com"},
	}
	res := Deduplicate(records, DomainThenName, accountFields)
	if len(res.Survivors) != 1 {
		t.Fatalf("survivors=%d", len(res.Survivors))
	}
	if name, _ := res.Survivors[0].Get("name"); name != "A Inc" {
		t.Errorf("tie survivor = %q, want the first-seen record", name)
	}
}

func TestPartitionIndependence(t *testing.T) {
	// A name-keyed record never merges with a domain-keyed one, even when
	// the names match exactly.
	records := []record.Record{
		{"name": "Acme", "domain": "acme.com"},
		{"name": "Acme"},
	}
	res := Deduplicate(records, DomainThenName, accountFields)
	if len(res.Survivors) != 2 || res.Removed != 0 {
		t.Errorf("survivors=%d removed=%d, want 2 and 0", len(res.Survivors), res.Removed)
	}
}

func TestConservation(t *testing.T) {
	records := []record.Record{
		{"name": "Acme", "domain": "acme.com"},
		{"name": "Acme Inc", "domain": "acme.com", "industry": "Tech"},
		{"name": "Beta"},
		{"name": "beta"},
		{"name": "Gamma", "domain": "gamma.io"},
	}
	res := Deduplicate(records, DomainThenName, accountFields)
	if len(res.Survivors)+res.Removed != len(records) {
		t.Errorf("conservation violated: %d + %d != %d", len(res.Survivors), res.Removed, len(records))
	}
}

func TestSurvivorDominance(t *testing.T) {
	records := []record.Record{
		{"email": "a@x.com"},
		{"email": "a@x.com", "full_name": "Jane", "title": "CTO"},
		{"email": "a@x.com", "full_name": "J."},
		{"email": "b@x.com", "full_name": "Bill", "phone": "+15550001111"},
		{"email": "b@x.com"},
	}
	res := Deduplicate(records, ByEmail, contactFields)

	maxByKey := make(map[Key]int)
	for _, r := range records {
		k := ByEmail(r)
		if s := Score(r, contactFields); s > maxByKey[k] {
			maxByKey[k] = s
		}
	}
	for _, s := range res.Survivors {
		k := ByEmail(s)
		if got := Score(s, contactFields); got < maxByKey[k] {
			t.Errorf("survivor for %v scores %d, group max is %d", k, got, maxByKey[k])
		}
	}
}

func TestNoDuplicates(t *testing.T) {
	records := []record.Record{
		{"email": "a@x.com"},
		{"email": "b@x.com"},
		{"email": "c@x.com"},
	}
	res := Deduplicate(records, ByEmail, contactFields)
	if res.Removed != 0 || len(res.Survivors) != 3 {
		t.Errorf("distinct keys: survivors=%d removed=%d", len(res.Survivors), res.Removed)
	}
}

func TestDeterministic(t *testing.T) {
	records := []record.Record{
		{"name": "Acme", "domain": "acme.com", "industry": "Tech"},
		{"name": "Acme Inc", "domain": "acme.com"},
		{"name": "Beta Labs"},
		{"name": "beta labs", "industry": "Biotech"},
		{"name": "Gamma", "domain": "gamma.io"},
	}
	first := Deduplicate(records, DomainThenName, accountFields)
	second := Deduplicate(records, DomainThenName, accountFields)
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input disagree")
	}
}

func TestFallbackOnlyPartition(t *testing.T) {
	// No record carries a domain: the engine still works over the
	// name-keyed partition alone.
	records := []record.Record{
		{"name": "Acme"},
		{"name": "ACME", "industry": "Tech"},
		{"name": "Beta"},
	}
	res := Deduplicate(records, DomainThenName, accountFields)
	if len(res.Survivors) != 2 || res.Removed != 1 {
		t.Fatalf("survivors=%d removed=%d", len(res.Survivors), res.Removed)
	}
	if name, _ := res.Survivors[0].Get("name"); name != "ACME" {
		t.Errorf("survivor = %q, want the higher-scoring ACME record", name)
	}
}

func TestEmptyInput(t *testing.T) {
	res := Deduplicate(nil, ByEmail, contactFields)
	if len(res.Survivors) != 0 || res.Removed != 0 {
		t.Errorf("empty input: survivors=%d removed=%d", len(res.Survivors), res.Removed)
	}
}
