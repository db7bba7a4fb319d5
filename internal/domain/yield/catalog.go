// Package yield holds the fixed cut breakdown applied to every registered animal.
package yield

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

// Percentages intentionally do not sum to 1; the remainder is shrink and loss.
var formulas = map[models.AnimalType][]models.CutDefinition{
	models.AnimalPork: {
		{Name: "Costilla", Percentage: 0.11, UnitPrice: 120},
		{Name: "Paleta", Percentage: 0.10, UnitPrice: 95},
		{Name: "Espinazo", Percentage: 0.07, UnitPrice: 70},
		{Name: "Pierna", Percentage: 0.18, UnitPrice: 110},
		{Name: "Lomo", Percentage: 0.08, UnitPrice: 135},
		{Name: "Tocino", Percentage: 0.12, UnitPrice: 85},
		{Name: "Cabeza/Otros", Percentage: 0.15, UnitPrice: 45},
	},
	models.AnimalBeef: {
		{Name: "Lomo Fino", Percentage: 0.06, UnitPrice: 280},
		{Name: "Costillar", Percentage: 0.14, UnitPrice: 150},
		{Name: "Pierna / Pulpa Negra", Percentage: 0.22, UnitPrice: 180},
		{Name: "Bistec / Aguayón", Percentage: 0.15, UnitPrice: 195},
		{Name: "Falda", Percentage: 0.10, UnitPrice: 140},
		{Name: "Chambarete", Percentage: 0.08, UnitPrice: 130},
		{Name: "Otros/Hueso", Percentage: 0.12, UnitPrice: 60},
	},
}

// Lookup returns the ordered cut definitions for an animal type. The returned
// slice is a copy; unknown types yield an empty result.
func Lookup(t models.AnimalType) []models.CutDefinition {
	return append([]models.CutDefinition(nil), formulas[t]...)
}

// Types lists the animal types in display order.
func Types() []models.AnimalType {
	return []models.AnimalType{models.AnimalPork, models.AnimalBeef}
}

// Parse resolves user input to an animal type. It accepts the wire values
// (CERDO, RES) as well as the English names (PORK, BEEF), case-insensitively.
func Parse(value string) (models.AnimalType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(models.AnimalPork), "PORK":
		return models.AnimalPork, nil
	case string(models.AnimalBeef), "BEEF":
		return models.AnimalBeef, nil
	default:
		return "", fmt.Errorf("unknown animal type %q", value)
	}
}
