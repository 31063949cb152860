// Package catalog provides the in-memory ticker reference table and its
// search filter. The table is loaded once at startup (CSV or SQLite) and is
// immutable for the process lifetime.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Record is one reference-table row: symbol, display name, instrument type.
type Record struct {
	Symbol string
	Name   string
	Kind   string
}

// Catalog is a searchable, load-ordered set of ticker records.
type Catalog struct {
	records []Record
}

// New wraps the given records in load order.
func New(records []Record) *Catalog {
	return &Catalog{records: records}
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns the full table in load order.
func (c *Catalog) Records() []Record { return c.records }

// Filter returns the records matching the query, in catalog order. An empty
// query returns the full catalog. Matching is a case-insensitive substring
// test against the symbol or the display name. The scan is linear; catalogs
// are hundreds to low thousands of rows, cheap enough per keystroke.
func (c *Catalog) Filter(query string) []Record {
	if query == "" {
		out := make([]Record, len(c.records))
		copy(out, c.records)
		return out
	}
	q := strings.ToLower(query)
	var out []Record
	for _, r := range c.records {
		if strings.Contains(strings.ToLower(r.Symbol), q) ||
			strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// LoadCSV reads ticker records from a CSV file with a header row. Columns
// are resolved by header name (Ticker/Symbol, Name, Type/Kind), falling back
// to positional order for unnamed layouts.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog CSV %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	symCol, nameCol, kindCol := 0, 1, 2
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "ticker", "symbol":
			symCol = i
		case "name":
			nameCol = i
		case "type", "kind":
			kindCol = i
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if symCol >= len(row) {
			continue
		}
		rec := Record{Symbol: strings.TrimSpace(row[symCol])}
		if rec.Symbol == "" {
			continue
		}
		if nameCol < len(row) {
			rec.Name = strings.TrimSpace(row[nameCol])
		}
		if kindCol < len(row) {
			rec.Kind = strings.TrimSpace(row[kindCol])
		}
		records = append(records, rec)
	}
	return records, nil
}
