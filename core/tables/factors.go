// Package tables loads the CSV factor and category tables used for
// handicap racing.
package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Category describes one handicap category and its time factor.
type Category struct {
	ID     string
	Name   string
	Factor float64
}

// FactorTable maps category ids to their factors.
type FactorTable struct {
	cats map[string]Category
}

// LoadFactors reads a factor table from CSV records of the form
// id,name,factor. A header row is skipped when the factor column does not
// parse. Blank lines and short records are ignored.
func LoadFactors(r io.Reader) (*FactorTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	t := &FactorTable{cats: make(map[string]Category)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read factors: %w", err)
		}
		if len(rec) < 3 {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			continue
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			continue
		}
		t.cats[strings.ToUpper(id)] = Category{ID: id, Name: strings.TrimSpace(rec[1]), Factor: f}
	}
	return t, nil
}

// LoadFactorsFile reads a factor table from the named CSV file.
func LoadFactorsFile(path string) (*FactorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open factors: %w", err)
	}
	defer f.Close()
	return LoadFactors(f)
}

// Factor returns the factor for the category id, or the fallback when the
// category is unknown. Lookup is case-insensitive.
func (t *FactorTable) Factor(id string, fallback float64) float64 {
	if c, ok := t.cats[strings.ToUpper(id)]; ok {
		return c.Factor
	}
	return fallback
}

// Category returns the category record for the id.
func (t *FactorTable) Category(id string) (Category, bool) {
	c, ok := t.cats[strings.ToUpper(id)]
	return c, ok
}

// Len returns the number of categories loaded.
func (t *FactorTable) Len() int { return len(t.cats) }
