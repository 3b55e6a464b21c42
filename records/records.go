// Package records parses delimited data files and database rows into
// packaged records with by-name field access. Parsed columns can be fed
// directly to the iterate package as named input sequences.
package records

import "fmt"

// Record packages one parsed line or row. Field values are accessed by the
// name assigned at construction (file header, explicit field list, or SQL
// column name) or by position.
type Record struct {
	names  []string
	values []any
}

// Get returns the value of the named field, or nil if the field does not
// exist.
func (r Record) Get(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Lookup returns the value of the named field and whether it exists.
func (r Record) Lookup(name string) (any, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// Index returns the value at position i.
func (r Record) Index(i int) any {
	return r.values[i]
}

// Fields returns the record's field names in column order.
func (r Record) Fields() []string {
	return r.names
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.values)
}

// Column extracts one named field from every record, in record order. It
// fails if any record is missing the field, so the result is safe to use
// as an iterate input sequence.
func Column(recs []Record, field string) ([]any, error) {
	values := make([]any, len(recs))
	for i, rec := range recs {
		v, ok := rec.Lookup(field)
		if !ok {
			return nil, fmt.Errorf("records: record %d has no field %q", i, field)
		}
		values[i] = v
	}
	return values, nil
}

// Columns extracts several named fields at once, keyed by field name. The
// result is shaped for iterate.Configure's named input sequences.
func Columns(recs []Record, fields ...string) (map[string][]any, error) {
	out := make(map[string][]any, len(fields))
	for _, field := range fields {
		col, err := Column(recs, field)
		if err != nil {
			return nil, err
		}
		out[field] = col
	}
	return out, nil
}
