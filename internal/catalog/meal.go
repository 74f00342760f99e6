// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/receitas/internal/models"
)

// Meal is one record from the catalog. Filter endpoints only fill ID, Name
// and Thumbnail.
type Meal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumbnail    string
	YouTube      string
	Source       string
	Ingredients  [models.MaxIngredientSlots]string
	Measures     [models.MaxIngredientSlots]string
}

// mealsEnvelope is the response body of every endpoint. Meals is null when
// nothing matched.
type mealsEnvelope struct {
	Meals []Meal `json:"meals"`
}

// UnmarshalJSON decodes the flat record, including strIngredient1..20 and
// strMeasure1..20. Null fields decode as empty strings.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	field := func(key string) (string, error) {
		v, ok := raw[key]
		if !ok {
			return "", nil
		}
		s, err := scalarString(v)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		return s, nil
	}

	var err error
	scalars := []struct {
		key string
		dst *string
	}{
		{"idMeal", &m.ID},
		{"strMeal", &m.Name},
		{"strCategory", &m.Category},
		{"strArea", &m.Area},
		{"strInstructions", &m.Instructions},
		{"strMealThumb", &m.Thumbnail},
		{"strYoutube", &m.YouTube},
		{"strSource", &m.Source},
	}
	for _, s := range scalars {
		if *s.dst, err = field(s.key); err != nil {
			return err
		}
	}

	for i := 0; i < models.MaxIngredientSlots; i++ {
		n := strconv.Itoa(i + 1)
		if m.Ingredients[i], err = field("strIngredient" + n); err != nil {
			return err
		}
		if m.Measures[i], err = field("strMeasure" + n); err != nil {
			return err
		}
	}
	return nil
}

// scalarString accepts a JSON string, number or null.
func scalarString(v json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(v))
	switch {
	case trimmed == "null" || trimmed == "":
		return "", nil
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	case trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'):
		return trimmed, nil
	default:
		return "", fmt.Errorf("unexpected value %s", trimmed)
	}
}

// Slots returns the 20 ingredient/measure pairs in order.
func (m *Meal) Slots() []models.IngredientSlot {
	slots := make([]models.IngredientSlot, models.MaxIngredientSlots)
	for i := range slots {
		slots[i] = models.IngredientSlot{
			Ingredient: m.Ingredients[i],
			Measure:    m.Measures[i],
		}
	}
	return slots
}

// IngredientLine formats one slot for display. ok is false for blank
// ingredients.
func IngredientLine(measure, ingredient string) (line string, ok bool) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return "", false
	}
	measure = strings.TrimSpace(measure)
	if measure == "" {
		return ingredient, true
	}
	return measure + " de " + ingredient, true
}

// IngredientLines formats every non-blank slot, preserving order.
func IngredientLines(slots []models.IngredientSlot) []string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		if line, ok := IngredientLine(s.Measure, s.Ingredient); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
