package gspay

import (
	"errors"
	"testing"
)

func TestLoadEmbeddedTables(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(table.Grades()) == 0 {
		t.Fatal("Load() produced no grades")
	}
	if len(table.Localities()) == 0 {
		t.Fatal("Load() produced no localities")
	}
}

func TestBasePay(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name    string
		grade   int
		step    int
		wantErr error
	}{
		{"valid lookup", 12, 1, nil},
		{"top step", 15, 10, nil},
		{"unknown grade", 4, 1, ErrUnknownGrade},
		{"step too low", 12, 0, ErrUnknownStep},
		{"step too high", 12, 11, ErrUnknownStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pay, err := table.BasePay(tt.grade, tt.step)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("BasePay(%d, %d) error = %v, want %v", tt.grade, tt.step, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BasePay(%d, %d) error: %v", tt.grade, tt.step, err)
			}
			if pay <= 0 {
				t.Errorf("BasePay(%d, %d) = %d, want positive", tt.grade, tt.step, pay)
			}
		})
	}
}

func TestBasePayStepsIncrease(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, grade := range table.Grades() {
		prev := 0
		for step := 1; step <= 10; step++ {
			pay, err := table.BasePay(grade, step)
			if err != nil {
				t.Fatalf("BasePay(%d, %d) error: %v", grade, step, err)
			}
			if pay <= prev {
				t.Errorf("GS-%d step %d pay %d not greater than step %d pay %d", grade, step, pay, step-1, prev)
			}
			prev = pay
		}
	}
}

func TestAdjustedPay(t *testing.T) {
	table, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	base, err := table.BasePay(12, 5)
	if err != nil {
		t.Fatalf("BasePay error: %v", err)
	}
	adjusted, err := table.AdjustedPay(12, 5, "DCB")
	if err != nil {
		t.Fatalf("AdjustedPay error: %v", err)
	}
	if adjusted <= base {
		t.Errorf("AdjustedPay = %d, want greater than base %d", adjusted, base)
	}

	if _, err := table.AdjustedPay(12, 5, "XX"); !errors.Is(err, ErrUnknownLocality) {
		t.Errorf("AdjustedPay unknown locality error = %v, want ErrUnknownLocality", err)
	}
	if _, err := table.AdjustedPay(99, 5, "DCB"); !errors.Is(err, ErrUnknownGrade) {
		t.Errorf("AdjustedPay unknown grade error = %v, want ErrUnknownGrade", err)
	}
}
