// internal/domain/catalog/entity.go
package catalog

// Brand identifies one of the two storefronts sharing cart and checkout
type Brand string

const (
	BrandOhana  Brand = "ohana"
	BrandChilli Brand = "chilli"
)

// Valid reports whether b is a known brand
func (b Brand) Valid() bool {
	return b == BrandOhana || b == BrandChilli
}

// Category groups products of one brand
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand Brand  `json:"brand"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon,omitempty"`
}

// Product represents a ready-made menu item
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int64    `json:"price"` // Smallest displayed currency unit
	Brand        Brand    `json:"brand"`
	CategoryID   string   `json:"category_id"`
	Image        string   `json:"image,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Calories     int      `json:"calories,omitempty"`
	IsVegan      bool     `json:"is_vegan,omitempty"`
	IsGlutenFree bool     `json:"is_gluten_free,omitempty"`
	IsPopular    bool     `json:"is_popular,omitempty"`
	IsNew        bool     `json:"is_new,omitempty"`
}

// Modifier is a per-product add-on. It is catalog data only and does not
// take part in pricing.
type Modifier struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ProductID string `json:"product_id"`
}

// IngredientType is the bowl category an ingredient belongs to
type IngredientType string

const (
	IngredientBase        IngredientType = "base"
	IngredientProtein     IngredientType = "protein"
	IngredientAcompanante IngredientType = "acompanante"
	IngredientSauce       IngredientType = "sauce"
	IngredientTopping     IngredientType = "topping"
)

// Valid reports whether t is a known ingredient type
func (t IngredientType) Valid() bool {
	switch t {
	case IngredientBase, IngredientProtein, IngredientAcompanante, IngredientSauce, IngredientTopping:
		return true
	}
	return false
}

// Ingredient is an immutable catalog entry referenced by bowl configurations
type Ingredient struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         IngredientType `json:"type"`
	Price        int64          `json:"price,omitempty"` // Surcharge, zero when none
	Calories     int            `json:"calories,omitempty"`
	IsVegan      bool           `json:"is_vegan,omitempty"`
	IsGlutenFree bool           `json:"is_gluten_free,omitempty"`
	Image        string         `json:"image,omitempty"`
}

// SizeKey identifies a bowl size tier
type SizeKey string

const (
	SizeSmall  SizeKey = "small"
	SizeMedium SizeKey = "medium"
	SizeLarge  SizeKey = "large"
)

// SizeRule is the capacity envelope and base price of a bowl size
type SizeRule struct {
	Key             SizeKey `json:"size"`
	Name            string  `json:"name"`
	BasePrice       int64   `json:"price"`
	MaxBases        int     `json:"max_bases"`
	MaxProteins     int     `json:"max_proteins"`
	MaxAcompanantes int     `json:"max_acompanantes"`
}

// Capacity returns the selection limit of the rule for an ingredient type
func (r SizeRule) Capacity(t IngredientType) int {
	switch t {
	case IngredientBase:
		return r.MaxBases
	case IngredientProtein:
		return r.MaxProteins
	case IngredientAcompanante:
		return r.MaxAcompanantes
	default:
		return 0
	}
}
