// internal/domain/bowl/builder.go
package bowl

import (
	"github.com/ohana-chilli/storefront/internal/domain/catalog"
	"github.com/ohana-chilli/storefront/internal/domain/pricing"
)

// Step is a stage of the bowl wizard
type Step int

const (
	StepSize Step = iota
	StepBases
	StepProteins
	StepAcompanantes
	StepSummary
)

var stepNames = [...]string{"size", "bases", "proteins", "acompanantes", "summary"}

func (s Step) String() string {
	if s < StepSize || s > StepSummary {
		return "unknown"
	}
	return stepNames[s]
}

// ParseStep converts a step name back to a Step
func ParseStep(name string) (Step, bool) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), true
		}
	}
	return StepSize, false
}

// IngredientType returns the ingredient category selected in this step
func (s Step) IngredientType() (catalog.IngredientType, bool) {
	switch s {
	case StepBases:
		return catalog.IngredientBase, true
	case StepProteins:
		return catalog.IngredientProtein, true
	case StepAcompanantes:
		return catalog.IngredientAcompanante, true
	}
	return "", false
}

// Sink receives finished bowls. The cart engine is the production sink.
type Sink interface {
	AcceptBowl(bowl catalog.CustomBowl, notes string) error
}

// Builder drives the step-by-step construction of a custom bowl. Rejected
// transitions are no-ops that report false; every transition has a Can
// query so callers can disable the matching affordance.
type Builder struct {
	store catalog.Store

	step         Step
	size         *catalog.SizeRule
	bases        []catalog.Ingredient
	proteins     []catalog.Ingredient
	acompanantes []catalog.Ingredient
	notes        string
	search       string
}

// NewBuilder creates a builder in the size step with nothing selected
func NewBuilder(store catalog.Store) *Builder {
	return &Builder{store: store}
}

// Step returns the active step
func (b *Builder) Step() Step {
	return b.step
}

// Size returns the chosen size rule
func (b *Builder) Size() (catalog.SizeRule, bool) {
	if b.size == nil {
		return catalog.SizeRule{}, false
	}
	return *b.size, true
}

// Notes returns the bowl notes
func (b *Builder) Notes() string {
	return b.notes
}

// Search returns the active candidate filter
func (b *Builder) Search() string {
	return b.search
}

// Selected returns a copy of the selection for an ingredient type
func (b *Builder) Selected(t catalog.IngredientType) []catalog.Ingredient {
	sel := b.selection(t)
	if sel == nil {
		return []catalog.Ingredient{}
	}
	return append([]catalog.Ingredient{}, *sel...)
}

// Capacity returns how many ingredients of type t the chosen size allows
func (b *Builder) Capacity(t catalog.IngredientType) int {
	if b.size == nil {
		return 0
	}
	return b.size.Capacity(t)
}

// Price is the live preview: size price plus protein surcharges, 0 until a
// size is chosen
func (b *Builder) Price() int64 {
	if b.size == nil {
		return 0
	}
	return pricing.BowlPreview(*b.size, b.proteins)
}

// CanChooseSize reports whether a size can be chosen now
func (b *Builder) CanChooseSize(rule catalog.SizeRule) bool {
	return b.step == StepSize && rule.Key != ""
}

// ChooseSize sets the active size. Choosing a different size empties every
// selection since capacities differ per size.
func (b *Builder) ChooseSize(rule catalog.SizeRule) bool {
	if !b.CanChooseSize(rule) {
		return false
	}
	if b.size == nil || b.size.Key != rule.Key {
		b.bases, b.proteins, b.acompanantes = nil, nil, nil
	}
	b.size = &rule
	return true
}

// IsSelected reports whether ingredient is part of the configuration
func (b *Builder) IsSelected(ing catalog.Ingredient) bool {
	sel := b.selection(ing.Type)
	return sel != nil && indexOf(*sel, ing.ID) >= 0
}

// CanToggle reports whether toggling ingredient would change the selection.
// Removing is always allowed; adding needs room under the size capacity.
func (b *Builder) CanToggle(ing catalog.Ingredient) bool {
	t, ok := b.step.IngredientType()
	if !ok || ing.Type != t || b.size == nil {
		return false
	}
	sel := b.selection(t)
	if indexOf(*sel, ing.ID) >= 0 {
		return true
	}
	return len(*sel) < b.size.Capacity(t)
}

// Toggle adds or removes ingredient from the active step's selection
func (b *Builder) Toggle(ing catalog.Ingredient) bool {
	if !b.CanToggle(ing) {
		return false
	}
	sel := b.selection(ing.Type)
	if i := indexOf(*sel, ing.ID); i >= 0 {
		*sel = append((*sel)[:i:i], (*sel)[i+1:]...)
		return true
	}
	*sel = append(*sel, ing)
	return true
}

// StepComplete reports whether the completion predicate of step holds
func (b *Builder) StepComplete(step Step) bool {
	if b.size == nil {
		return false
	}
	switch step {
	case StepSize:
		return true
	case StepBases:
		return len(b.bases) == b.size.MaxBases
	case StepProteins:
		return len(b.proteins) > 0 && len(b.proteins) <= b.size.MaxProteins
	case StepAcompanantes:
		return len(b.acompanantes) > 0 && len(b.acompanantes) <= b.size.MaxAcompanantes
	case StepSummary:
		return true
	}
	return false
}

// CanAdvance reports whether the current step is complete and has a successor
func (b *Builder) CanAdvance() bool {
	return b.step < StepSummary && b.StepComplete(b.step)
}

// Advance moves to the next step and clears the search
func (b *Builder) Advance() bool {
	if !b.CanAdvance() {
		return false
	}
	b.step++
	b.search = ""
	return true
}

// CanRetreat reports whether there is a previous step
func (b *Builder) CanRetreat() bool {
	return b.step > StepSize
}

// Retreat moves to the previous step without validating and clears the search
func (b *Builder) Retreat() bool {
	if !b.CanRetreat() {
		return false
	}
	b.step--
	b.search = ""
	return true
}

// CanSetNotes reports whether notes are editable
func (b *Builder) CanSetNotes() bool {
	return b.step == StepSummary
}

// SetNotes replaces the bowl notes
func (b *Builder) SetNotes(text string) bool {
	if !b.CanSetNotes() {
		return false
	}
	b.notes = text
	return true
}

// SetSearch filters the candidate list. It never touches the selection.
func (b *Builder) SetSearch(query string) {
	b.search = query
}

// Candidates returns the ingredients offered by the active step, filtered by
// the search query
func (b *Builder) Candidates() []catalog.Ingredient {
	t, ok := b.step.IngredientType()
	if !ok {
		return []catalog.Ingredient{}
	}
	return catalog.FilterByName(b.store.IngredientsByType(t), b.search)
}

// CanSubmit reports whether the bowl can be handed off
func (b *Builder) CanSubmit() bool {
	return b.step == StepSummary && b.size != nil
}

// Bowl builds the CustomBowl for the current selections
func (b *Builder) Bowl() (catalog.CustomBowl, bool) {
	if b.size == nil {
		return catalog.CustomBowl{}, false
	}
	return catalog.CustomBowl{
		Size:         *b.size,
		Bases:        append([]catalog.Ingredient{}, b.bases...),
		Proteins:     append([]catalog.Ingredient{}, b.proteins...),
		Acompanantes: append([]catalog.Ingredient{}, b.acompanantes...),
		Notes:        b.notes,
	}, true
}

// Submit hands the finished bowl to sink and resets the builder once the sink
// accepts it. It reports false without calling sink outside the summary step.
func (b *Builder) Submit(sink Sink) (bool, error) {
	if !b.CanSubmit() {
		return false, nil
	}
	bowl, _ := b.Bowl()
	if err := sink.AcceptBowl(bowl, b.notes); err != nil {
		return false, err
	}
	b.Reset()
	return true, nil
}

// Reset returns the builder to the size step with nothing selected
func (b *Builder) Reset() {
	*b = Builder{store: b.store}
}

func (b *Builder) selection(t catalog.IngredientType) *[]catalog.Ingredient {
	switch t {
	case catalog.IngredientBase:
		return &b.bases
	case catalog.IngredientProtein:
		return &b.proteins
	case catalog.IngredientAcompanante:
		return &b.acompanantes
	}
	return nil
}

func indexOf(items []catalog.Ingredient, id string) int {
	for i, ing := range items {
		if ing.ID == id {
			return i
		}
	}
	return -1
}
