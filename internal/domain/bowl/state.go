// internal/domain/bowl/state.go
package bowl

import (
	"errors"
	"fmt"

	"github.com/ohana-chilli/storefront/internal/domain/catalog"
)

// ErrInvalidState is returned when a stored configuration cannot be replayed
var ErrInvalidState = errors.New("invalid bowl state")

// State is the serialized form of an in-progress configuration. Ingredients
// are stored by id and resolved against the catalog on restore.
type State struct {
	Step         string          `json:"step"`
	Size         catalog.SizeKey `json:"size,omitempty"`
	Bases        []string        `json:"bases,omitempty"`
	Proteins     []string        `json:"proteins,omitempty"`
	Acompanantes []string        `json:"acompanantes,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Search       string          `json:"search,omitempty"`
}

// State captures the builder for persistence
func (b *Builder) State() State {
	st := State{
		Step:   b.step.String(),
		Notes:  b.notes,
		Search: b.search,
	}
	if b.size != nil {
		st.Size = b.size.Key
	}
	st.Bases = ids(b.bases)
	st.Proteins = ids(b.proteins)
	st.Acompanantes = ids(b.acompanantes)
	return st
}

// Restore rebuilds a builder from st. Selections may outlive a retreat, so
// they are accepted on any step, but every step before the stored one must
// be complete and no selection may exceed its capacity.
func Restore(store catalog.Store, st State) (*Builder, error) {
	target, ok := ParseStep(st.Step)
	if !ok {
		return nil, fmt.Errorf("%w: unknown step %q", ErrInvalidState, st.Step)
	}

	b := NewBuilder(store)
	b.notes = st.Notes
	b.search = st.Search
	if st.Size == "" {
		if target != StepSize || len(st.Bases)+len(st.Proteins)+len(st.Acompanantes) > 0 {
			return nil, fmt.Errorf("%w: selections without a size", ErrInvalidState)
		}
		return b, nil
	}

	rule, ok := store.SizeRule(st.Size)
	if !ok {
		return nil, fmt.Errorf("%w: unknown size %q", ErrInvalidState, st.Size)
	}
	b.size = &rule

	sets := []struct {
		t   catalog.IngredientType
		ids []string
	}{
		{catalog.IngredientBase, st.Bases},
		{catalog.IngredientProtein, st.Proteins},
		{catalog.IngredientAcompanante, st.Acompanantes},
	}
	for _, set := range sets {
		if len(set.ids) > rule.Capacity(set.t) {
			return nil, fmt.Errorf("%w: %d %s selected, capacity %d", ErrInvalidState, len(set.ids), set.t, rule.Capacity(set.t))
		}
		sel := b.selection(set.t)
		for _, id := range set.ids {
			ing, ok := store.Ingredient(id)
			if !ok {
				return nil, fmt.Errorf("%w: unknown ingredient %q", ErrInvalidState, id)
			}
			if ing.Type != set.t || indexOf(*sel, id) >= 0 {
				return nil, fmt.Errorf("%w: ingredient %q rejected as %s", ErrInvalidState, id, set.t)
			}
			*sel = append(*sel, ing)
		}
	}

	for step := StepSize; step < target; step++ {
		if !b.StepComplete(step) {
			return nil, fmt.Errorf("%w: %s incomplete before %s", ErrInvalidState, step, target)
		}
	}
	b.step = target

	return b, nil
}

// View is the read model the storefront renders for a configuration
type View struct {
	Step         string               `json:"step"`
	Size         *catalog.SizeRule    `json:"size,omitempty"`
	Bases        []catalog.Ingredient `json:"bases"`
	Proteins     []catalog.Ingredient `json:"proteins"`
	Acompanantes []catalog.Ingredient `json:"acompanantes"`
	Capacity     map[string]int       `json:"capacity,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Search       string               `json:"search,omitempty"`
	Candidates   []catalog.Ingredient `json:"candidates"`
	Price        int64                `json:"price"`
	Actions      map[string]bool      `json:"actions"`
	Sizes        []catalog.SizeRule   `json:"sizes,omitempty"`
}

// View renders the builder for display
func (b *Builder) View() View {
	v := View{
		Step:         b.step.String(),
		Bases:        b.Selected(catalog.IngredientBase),
		Proteins:     b.Selected(catalog.IngredientProtein),
		Acompanantes: b.Selected(catalog.IngredientAcompanante),
		Notes:        b.notes,
		Search:       b.search,
		Candidates:   b.Candidates(),
		Price:        b.Price(),
		Actions: map[string]bool{
			"advance":   b.CanAdvance(),
			"retreat":   b.CanRetreat(),
			"set_notes": b.CanSetNotes(),
			"submit":    b.CanSubmit(),
		},
	}
	if b.size != nil {
		size := *b.size
		v.Size = &size
		v.Capacity = map[string]int{
			string(catalog.IngredientBase):        size.MaxBases,
			string(catalog.IngredientProtein):     size.MaxProteins,
			string(catalog.IngredientAcompanante): size.MaxAcompanantes,
		}
	}
	if b.step == StepSize {
		v.Sizes = b.store.SizeRules()
	}
	return v
}

func ids(items []catalog.Ingredient) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, ing := range items {
		out[i] = ing.ID
	}
	return out
}
