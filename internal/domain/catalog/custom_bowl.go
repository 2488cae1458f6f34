// internal/domain/catalog/custom_bowl.go
package catalog

import (
	"errors"
	"fmt"
)

// ErrIncompleteBowl is returned when a custom bowl violates its size rule
var ErrIncompleteBowl = errors.New("custom bowl is incomplete")

// CustomBowl is a finished bowl configuration. It is immutable once it has
// been placed in a cart.
type CustomBowl struct {
	Size         SizeRule     `json:"size"`
	Bases        []Ingredient `json:"bases"`
	Proteins     []Ingredient `json:"proteins"`
	Acompanantes []Ingredient `json:"acompanantes"`
	Notes        string       `json:"notes,omitempty"`
}

// Validate checks the bowl against its size rule: bases must fill the rule
// exactly, proteins and acompanantes need at least one and at most the
// rule's maximum, and every set holds distinct ingredients of its own type.
func (b CustomBowl) Validate() error {
	if len(b.Bases) != b.Size.MaxBases {
		return fmt.Errorf("%w: %d of %d bases selected", ErrIncompleteBowl, len(b.Bases), b.Size.MaxBases)
	}
	if n := len(b.Proteins); n < 1 || n > b.Size.MaxProteins {
		return fmt.Errorf("%w: %d proteins selected, allowed 1-%d", ErrIncompleteBowl, n, b.Size.MaxProteins)
	}
	if n := len(b.Acompanantes); n < 1 || n > b.Size.MaxAcompanantes {
		return fmt.Errorf("%w: %d acompanantes selected, allowed 1-%d", ErrIncompleteBowl, n, b.Size.MaxAcompanantes)
	}

	sets := []struct {
		want  IngredientType
		items []Ingredient
	}{
		{IngredientBase, b.Bases},
		{IngredientProtein, b.Proteins},
		{IngredientAcompanante, b.Acompanantes},
	}
	for _, set := range sets {
		seen := make(map[string]struct{}, len(set.items))
		for _, ing := range set.items {
			if ing.Type != set.want {
				return fmt.Errorf("%w: %s is a %s, not a %s", ErrIncompleteBowl, ing.ID, ing.Type, set.want)
			}
			if _, dup := seen[ing.ID]; dup {
				return fmt.Errorf("%w: %s selected twice", ErrIncompleteBowl, ing.ID)
			}
			seen[ing.ID] = struct{}{}
		}
	}

	return nil
}
