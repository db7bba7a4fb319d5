package yield

import (
	"testing"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

func TestLookup_PorkCatalog(t *testing.T) {
	cuts := Lookup(models.AnimalPork)
	if len(cuts) != 7 {
		t.Fatalf("Expected 7 pork cuts, got %d", len(cuts))
	}

	first := cuts[0]
	if first.Name != "Costilla" || first.Percentage != 0.11 || first.UnitPrice != 120 {
		t.Errorf("Unexpected first pork cut: %+v", first)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	cuts := Lookup(models.AnimalBeef)
	cuts[0].UnitPrice = 1

	again := Lookup(models.AnimalBeef)
	if again[0].UnitPrice != 280 {
		t.Errorf("Expected catalog to stay unchanged, got unit price %v", again[0].UnitPrice)
	}
}

func TestLookup_PercentagesNotNormalized(t *testing.T) {
	tests := []struct {
		animal models.AnimalType
		want   float64
	}{
		{models.AnimalPork, 0.81},
		{models.AnimalBeef, 0.87},
	}

	for _, tt := range tests {
		var sum float64
		for _, cut := range Lookup(tt.animal) {
			if cut.Percentage <= 0 || cut.Percentage > 1 {
				t.Errorf("%s: percentage out of range for %s: %v", tt.animal, cut.Name, cut.Percentage)
			}
			if cut.UnitPrice <= 0 {
				t.Errorf("%s: non-positive unit price for %s", tt.animal, cut.Name)
			}
			sum += cut.Percentage
		}
		if diff := sum - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: expected percentages to sum to %v, got %v", tt.animal, tt.want, sum)
		}
	}
}

func TestLookup_UnknownType(t *testing.T) {
	if cuts := Lookup(models.AnimalType("CORDERO")); len(cuts) != 0 {
		t.Errorf("Expected no cuts for unknown type, got %d", len(cuts))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    models.AnimalType
		wantErr bool
	}{
		{"CERDO", models.AnimalPork, false},
		{"pork", models.AnimalPork, false},
		{" res ", models.AnimalBeef, false},
		{"BEEF", models.AnimalBeef, false},
		{"chicken", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}
