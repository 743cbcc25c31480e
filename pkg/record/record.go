// Package record defines the row model shared by the cleaning pipeline and
// the dedup engine. A Record maps canonical field names to string values;
// a missing key means the field is null. The empty string and the literal
// "N/A" are treated as absent too, so callers never branch on "does this
// column exist", only on "is this value present".
package record

// NA is the sentinel some CRM exports use for missing values.
const NA = "N/A"

// Record is one row keyed by canonical field name.
type Record map[string]string

// Get returns the value for field and whether it is present.
// Empty values and the NA sentinel count as absent.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == "" || v == NA {
		return "", false
	}
	return v, true
}

// Present reports whether field holds a usable value.
func (r Record) Present(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// Set stores value under field. Setting the empty string clears the field,
// keeping the "missing key = null" invariant.
func (r Record) Set(field, value string) {
	if value == "" {
		delete(r, field)
		return
	}
	r[field] = value
}

// Clear removes field from the record.
func (r Record) Clear(field string) {
	delete(r, field)
}

// Raw returns the stored value without sentinel interpretation. Used by the
// CSV writer so that values like "N/A" survive untouched in columns the
// pipeline did not normalize.
func (r Record) Raw(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
