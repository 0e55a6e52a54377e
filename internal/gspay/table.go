// Package gspay provides lookup over static GS pay reference tables.
// The tables are sample data embedded at build time and never mutated.
package gspay

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

//go:embed data/gs_base.json data/locality.json
var dataFS embed.FS

// Sentinel errors for invalid lookups.
var (
	// ErrUnknownGrade indicates the grade is outside the table.
	ErrUnknownGrade = errors.New("unknown GS grade")
	// ErrUnknownStep indicates the step is outside 1-10.
	ErrUnknownStep = errors.New("step out of range (must be 1-10)")
	// ErrUnknownLocality indicates the locality code is not in the table.
	ErrUnknownLocality = errors.New("unknown locality code")
)

// Table holds GS base pay by grade/step and locality adjustment rates.
type Table struct {
	base     map[int][]int
	locality map[string]float64
}

type baseFile struct {
	Year   int              `json:"year"`
	Grades map[string][]int `json:"grades"`
}

type localityFile struct {
	Year  int                `json:"year"`
	Rates map[string]float64 `json:"rates"`
}

// Load parses the embedded pay tables.
func Load() (*Table, error) {
	rawBase, err := dataFS.ReadFile("data/gs_base.json")
	if err != nil {
		return nil, fmt.Errorf("read base table: %w", err)
	}
	var bf baseFile
	if err := json.Unmarshal(rawBase, &bf); err != nil {
		return nil, fmt.Errorf("parse base table: %w", err)
	}

	rawLoc, err := dataFS.ReadFile("data/locality.json")
	if err != nil {
		return nil, fmt.Errorf("read locality table: %w", err)
	}
	var lf localityFile
	if err := json.Unmarshal(rawLoc, &lf); err != nil {
		return nil, fmt.Errorf("parse locality table: %w", err)
	}

	t := &Table{
		base:     make(map[int][]int, len(bf.Grades)),
		locality: lf.Rates,
	}
	for gradeStr, steps := range bf.Grades {
		grade, err := strconv.Atoi(gradeStr)
		if err != nil {
			return nil, fmt.Errorf("parse grade %q: %w", gradeStr, err)
		}
		if len(steps) != 10 {
			return nil, fmt.Errorf("grade %d has %d steps, want 10", grade, len(steps))
		}
		t.base[grade] = steps
	}

	return t, nil
}

// BasePay returns the annual base pay in whole dollars for a grade and step.
func (t *Table) BasePay(grade, step int) (int, error) {
	steps, ok := t.base[grade]
	if !ok {
		return 0, fmt.Errorf("%w: GS-%d", ErrUnknownGrade, grade)
	}
	if step < 1 || step > 10 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	return steps[step-1], nil
}

// AdjustedPay returns base pay with the locality percentage applied,
// rounded to the nearest dollar.
func (t *Table) AdjustedPay(grade, step int, locality string) (int, error) {
	base, err := t.BasePay(grade, step)
	if err != nil {
		return 0, err
	}
	rate, ok := t.locality[locality]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocality, locality)
	}
	adjusted := float64(base) * (1 + rate/100)
	return int(adjusted + 0.5), nil
}

// Grades returns the grades present in the table, ascending.
func (t *Table) Grades() []int {
	grades := make([]int, 0, len(t.base))
	for g := range t.base {
		grades = append(grades, g)
	}
	sort.Ints(grades)
	return grades
}

// Localities returns the locality codes present in the table, sorted.
func (t *Table) Localities() []string {
	codes := make([]string, 0, len(t.locality))
	for c := range t.locality {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
