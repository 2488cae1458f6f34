// internal/domain/catalog/store.go
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	beverageCategoryPrefix = "beverages"
	featuredLimit          = 6
)

// Store is the read-only catalog consumed by the ordering core
type Store interface {
	IngredientsByType(t IngredientType) []Ingredient
	Ingredient(id string) (Ingredient, bool)
	SizeRules() []SizeRule
	SizeRule(key SizeKey) (SizeRule, bool)
	Product(id string) (Product, bool)
	ProductsByBrand(brand Brand) []Product
	ProductsByCategory(categoryID string) []Product
	CategoriesByBrand(brand Brand) []Category
	BeverageCategories() []Category
	FeaturedProducts() []Product
	ModifiersForProduct(productID string) []Modifier
}

// StaticStore serves a fixed Menu from memory
type StaticStore struct {
	menu        Menu
	ingredients map[string]Ingredient
	products    map[string]Product
}

// NewStaticStore creates a store over menu
func NewStaticStore(menu Menu) *StaticStore {
	s := &StaticStore{
		menu:        menu,
		ingredients: make(map[string]Ingredient, len(menu.Ingredients)),
		products:    make(map[string]Product, len(menu.Products)),
	}
	for _, ing := range menu.Ingredients {
		s.ingredients[ing.ID] = ing
	}
	for _, p := range menu.Products {
		s.products[p.ID] = p
	}
	return s
}

// NewDefaultStore creates a store over the storefront menu
func NewDefaultStore() *StaticStore {
	return NewStaticStore(DefaultMenu())
}

// IngredientsByType returns ingredients of type t in menu order
func (s *StaticStore) IngredientsByType(t IngredientType) []Ingredient {
	out := []Ingredient{}
	for _, ing := range s.menu.Ingredients {
		if ing.Type == t {
			out = append(out, ing)
		}
	}
	return out
}

// Ingredient looks an ingredient up by id
func (s *StaticStore) Ingredient(id string) (Ingredient, bool) {
	ing, ok := s.ingredients[id]
	return ing, ok
}

// SizeRules returns every bowl size rule
func (s *StaticStore) SizeRules() []SizeRule {
	return append([]SizeRule(nil), s.menu.SizeRules...)
}

// SizeRule looks a size rule up by key
func (s *StaticStore) SizeRule(key SizeKey) (SizeRule, bool) {
	for _, r := range s.menu.SizeRules {
		if r.Key == key {
			return r, true
		}
	}
	return SizeRule{}, false
}

// Product looks a product up by id
func (s *StaticStore) Product(id string) (Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// ProductsByBrand returns the brand's food menu. Beverages are shared and
// only reachable through their categories.
func (s *StaticStore) ProductsByBrand(brand Brand) []Product {
	out := []Product{}
	for _, p := range s.menu.Products {
		if p.Brand == brand && !isBeverageCategory(p.CategoryID) {
			out = append(out, p)
		}
	}
	return out
}

// ProductsByCategory returns products filed under categoryID
func (s *StaticStore) ProductsByCategory(categoryID string) []Product {
	out := []Product{}
	for _, p := range s.menu.Products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// CategoriesByBrand returns categories owned by brand, beverages included
func (s *StaticStore) CategoriesByBrand(brand Brand) []Category {
	out := []Category{}
	for _, c := range s.menu.Categories {
		if c.Brand == brand {
			out = append(out, c)
		}
	}
	return out
}

// BeverageCategories returns the shared drinks categories
func (s *StaticStore) BeverageCategories() []Category {
	out := []Category{}
	for _, c := range s.menu.Categories {
		if isBeverageCategory(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// FeaturedProducts returns up to six popular or new products
func (s *StaticStore) FeaturedProducts() []Product {
	out := []Product{}
	for _, p := range s.menu.Products {
		if p.IsPopular || p.IsNew {
			out = append(out, p)
			if len(out) == featuredLimit {
				break
			}
		}
	}
	return out
}

// ModifiersForProduct returns the add-ons listed for a product
func (s *StaticStore) ModifiersForProduct(productID string) []Modifier {
	out := []Modifier{}
	for _, m := range s.menu.Modifiers {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// FilterByName keeps the ingredients whose name contains query, ignoring
// case. An empty query keeps everything.
func FilterByName(items []Ingredient, query string) []Ingredient {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	fold := cases.Fold()
	needle := fold.String(query)
	out := []Ingredient{}
	for _, ing := range items {
		if strings.Contains(fold.String(ing.Name), needle) {
			out = append(out, ing)
		}
	}
	return out
}

func isBeverageCategory(categoryID string) bool {
	return strings.HasPrefix(categoryID, beverageCategoryPrefix)
}
