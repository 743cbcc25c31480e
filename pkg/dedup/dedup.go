// Package dedup selects one canonical record per real-world entity. Records
// are scored by completeness, partitioned by identity key, and within each
// group the highest-scoring record survives, ties breaking to the earliest
// record in input order. The whole selection is a pure function of its
// input: same records in, same survivors out.
package dedup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/crmclean/pkg/record"
)

// Score counts how many of the given fields hold a usable value in r.
// Null, empty and "N/A" values do not count.
func Score(r record.Record, fields []string) int {
	score := 0
	for _, field := range fields {
		if r.Present(field) {
			score++
		}
	}
	return score
}

// Key identifies the dedup group a record belongs to. Kind separates key
// spaces: two records with different kinds never collide, even when their
// values coincide (a company named "acme.com" is not the domain acme.com).
type Key struct {
	Kind  string
	Value string
}

// A KeyResolver derives the identity key for one record.
type KeyResolver func(record.Record) Key

// DomainThenName keys accounts by domain when present, else by the
// lowercased company name. The two partitions are disjoint and dedup'd
// independently.
func DomainThenName(r record.Record) Key {
	if domain, ok := r.Get("domain"); ok {
		return Key{Kind: "domain", Value: domain}
	}
	name, _ := r.Get("name")
	return Key{Kind: "name", Value: strings.ToLower(name)}
}

// ByEmail keys contacts by their normalized email address. Records without
// a usable email are filtered upstream, so every record here has one.
func ByEmail(r record.Record) Key {
	email, _ := r.Get("email")
	return Key{Kind: "email", Value: email}
}

// ResolverFor maps a schema key strategy name to its resolver. An unknown
// strategy is a configuration error.
func ResolverFor(strategy string) (KeyResolver, error) {
	switch strategy {
	case "domain_then_name":
		return DomainThenName, nil
	case "email":
		return ByEmail, nil
	}
	return nil, fmt.Errorf("unknown key strategy: %q", strategy)
}

// Result is the outcome of one dedup pass.
type Result struct {
	Survivors []record.Record
	Removed   int
}

// Deduplicate groups records by identity key and keeps the most complete
// record of each group.
//
// The stable sort is load-bearing: with scores equal, stability preserves
// input order, so the first-seen record wins the tie. Survivors come out
// grouped by key kind (kinds in lexicographic order), each kind's survivors
// in descending score order.
func Deduplicate(records []record.Record, resolve KeyResolver, completenessFields []string) Result {
	type scored struct {
		rec   record.Record
		key   Key
		score int
	}

	items := make([]scored, len(records))
	for i, r := range records {
		items[i] = scored{rec: r, key: resolve(r), score: Score(r, completenessFields)}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	chosen := make(map[Key]struct{}, len(items))
	byKind := make(map[string][]record.Record)
	for _, it := range items {
		if _, dup := chosen[it.key]; dup {
			continue
		}
		chosen[it.key] = struct{}{}
		byKind[it.key.Kind] = append(byKind[it.key.Kind], it.rec)
	}

	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	survivors := make([]record.Record, 0, len(chosen))
	for _, kind := range kinds {
		survivors = append(survivors, byKind[kind]...)
	}
	return Result{Survivors: survivors, Removed: len(records) - len(survivors)}
}
