// internal/domain/catalog/menu.go
package catalog

// Menu is the full set of catalog data served by a StaticStore
type Menu struct {
	Categories  []Category
	SizeRules   []SizeRule
	Ingredients []Ingredient
	Products    []Product
	Modifiers   []Modifier
}

// DefaultMenu returns the storefront menu for both brands
func DefaultMenu() Menu {
	return Menu{
		Categories: []Category{
			{ID: "ohana-premade", Name: "Bowls Preparados", Brand: BrandOhana, Slug: "premade", Icon: "🥗"},
			{ID: "ohana-custom", Name: "Arma tu Bowl", Brand: BrandOhana, Slug: "custom", Icon: "✨"},

			{ID: "chilli-burgers", Name: "Hamburguesas", Brand: BrandChilli, Slug: "burgers", Icon: "🍔"},
			{ID: "chilli-hotdogs", Name: "Hot Dogs", Brand: BrandChilli, Slug: "hotdogs", Icon: "🌭"},
			{ID: "chilli-fries", Name: "Papas Fritas", Brand: BrandChilli, Slug: "fries", Icon: "🍟"},
			{ID: "chilli-mazorcadas", Name: "Mazorcadas", Brand: BrandChilli, Slug: "mazorcadas", Icon: "🌽"},
			{ID: "chilli-nachos", Name: "Nachos", Brand: BrandChilli, Slug: "nachos", Icon: "🧀"},

			{ID: "beverages-sodas", Name: "Refrescos", Brand: BrandOhana, Slug: "sodas", Icon: "🥤"},
			{ID: "beverages-juices", Name: "Jugos Naturales", Brand: BrandOhana, Slug: "juices", Icon: "🧃"},
			{ID: "beverages-water", Name: "Agua", Brand: BrandOhana, Slug: "water", Icon: "💧"},
		},

		SizeRules: []SizeRule{
			{Key: SizeSmall, Name: "Pequeño", BasePrice: 89, MaxBases: 1, MaxProteins: 1, MaxAcompanantes: 4},
			{Key: SizeMedium, Name: "Mediano", BasePrice: 119, MaxBases: 1, MaxProteins: 2, MaxAcompanantes: 5},
			{Key: SizeLarge, Name: "Grande", BasePrice: 149, MaxBases: 2, MaxProteins: 2, MaxAcompanantes: 6},
		},

		Ingredients: []Ingredient{
			{ID: "base-rice", Name: "Arroz Blanco", Type: IngredientBase, Calories: 130},
			{ID: "base-brown-rice", Name: "Arroz Integral", Type: IngredientBase, Calories: 110, IsGlutenFree: true},
			{ID: "base-quinoa", Name: "Quinoa", Type: IngredientBase, Calories: 120, IsVegan: true, IsGlutenFree: true},
			{ID: "base-lettuce", Name: "Mix de Lechugas", Type: IngredientBase, Calories: 15, IsVegan: true, IsGlutenFree: true},
			{ID: "base-spinach", Name: "Espinaca Baby", Type: IngredientBase, Calories: 20, IsVegan: true, IsGlutenFree: true},

			{ID: "protein-chicken", Name: "Pollo a la Plancha", Type: IngredientProtein, Calories: 165, IsGlutenFree: true},
			{ID: "protein-salmon", Name: "Salmón", Type: IngredientProtein, Calories: 180, IsGlutenFree: true, Price: 25},
			{ID: "protein-tuna", Name: "Atún Sellado", Type: IngredientProtein, Calories: 150, IsGlutenFree: true, Price: 20},
			{ID: "protein-shrimp", Name: "Camarones", Type: IngredientProtein, Calories: 100, IsGlutenFree: true, Price: 30},
			{ID: "protein-tofu", Name: "Tofu Marinado", Type: IngredientProtein, Calories: 80, IsVegan: true, IsGlutenFree: true},
			{ID: "protein-beef", Name: "Carne Asada", Type: IngredientProtein, Calories: 200, IsGlutenFree: true, Price: 15},

			{ID: "acc-avocado", Name: "Aguacate", Type: IngredientAcompanante, Calories: 80, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-corn", Name: "Elote", Type: IngredientAcompanante, Calories: 40, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-edamame", Name: "Edamame", Type: IngredientAcompanante, Calories: 60, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-cucumber", Name: "Pepino", Type: IngredientAcompanante, Calories: 10, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-tomato", Name: "Tomate Cherry", Type: IngredientAcompanante, Calories: 15, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-carrot", Name: "Zanahoria Rallada", Type: IngredientAcompanante, Calories: 25, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-cabbage", Name: "Col Morada", Type: IngredientAcompanante, Calories: 15, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-mango", Name: "Mango", Type: IngredientAcompanante, Calories: 35, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-beans", Name: "Frijoles Negros", Type: IngredientAcompanante, Calories: 70, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-chickpeas", Name: "Garbanzos", Type: IngredientAcompanante, Calories: 65, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-seaweed", Name: "Alga Wakame", Type: IngredientAcompanante, Calories: 5, IsVegan: true, IsGlutenFree: true},
			{ID: "acc-pineapple", Name: "Piña", Type: IngredientAcompanante, Calories: 30, IsVegan: true, IsGlutenFree: true},

			{ID: "sauce-sesame", Name: "Ajonjolí", Type: IngredientSauce, IsVegan: true},
			{ID: "sauce-sriracha", Name: "Sriracha Mayo", Type: IngredientSauce},
			{ID: "sauce-teriyaki", Name: "Teriyaki", Type: IngredientSauce, IsVegan: true},
			{ID: "sauce-chipotle", Name: "Chipotle", Type: IngredientSauce},
			{ID: "sauce-citrus", Name: "Cítrica", Type: IngredientSauce, IsVegan: true, IsGlutenFree: true},
		},

		Products: append(append(ohanaBowls(), chilliMenu()...), beverages()...),

		Modifiers: []Modifier{
			{ID: "mod-extra-cheese", Name: "Extra Queso", Price: 15, ProductID: "chilli-burger-1"},
			{ID: "mod-bacon", Name: "Agregar Tocino", Price: 20, ProductID: "chilli-burger-1"},
			{ID: "mod-avocado", Name: "Agregar Aguacate", Price: 25, ProductID: "chilli-burger-1"},
			{ID: "mod-large-drink", Name: "Bebida Grande", Price: 10, ProductID: "bev-1"},
		},
	}
}

func ohanaBowls() []Product {
	return []Product{
		{
			ID: "ohana-1", Name: "Bowl Hawaiano", Price: 159, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Salmón fresco, arroz de sushi, aguacate, mango, edamame y salsa de ajonjolí",
			Ingredients: []string{"Salmón", "Arroz", "Aguacate", "Mango", "Edamame"},
			Calories:    520, IsPopular: true,
		},
		{
			ID: "ohana-2", Name: "Bowl Mediterráneo", Price: 139, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Pollo a la plancha, quinoa, pepino, tomate cherry, garbanzos y aderezo cítrico",
			Ingredients: []string{"Pollo", "Quinoa", "Pepino", "Tomate", "Garbanzos"},
			Calories:    450, IsGlutenFree: true,
		},
		{
			ID: "ohana-3", Name: "Bowl Vegano Power", Price: 129, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Tofu marinado, arroz integral, aguacate, edamame, col morada y salsa teriyaki",
			Ingredients: []string{"Tofu", "Arroz Integral", "Aguacate", "Edamame", "Col"},
			Calories:    380, IsVegan: true, IsGlutenFree: true, IsNew: true,
		},
		{
			ID: "ohana-4", Name: "Bowl Tropical", Price: 169, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Camarones al limón, arroz blanco, mango, piña, zanahoria y salsa chipotle",
			Ingredients: []string{"Camarones", "Arroz", "Mango", "Piña", "Zanahoria"},
			Calories:    420, IsPopular: true,
		},
		{
			ID: "ohana-5", Name: "Bowl Tex-Mex", Price: 149, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Carne asada, arroz, frijoles negros, elote, aguacate y salsa chipotle",
			Ingredients: []string{"Carne", "Arroz", "Frijoles", "Elote", "Aguacate"},
			Calories:    580, IsGlutenFree: true,
		},
		{
			ID: "ohana-6", Name: "Bowl Atún Spicy", Price: 159, Brand: BrandOhana, CategoryID: "ohana-premade",
			Description: "Atún sellado, mix de lechugas, pepino, wakame, mango y sriracha mayo",
			Ingredients: []string{"Atún", "Lechugas", "Pepino", "Wakame", "Mango"},
			Calories:    390, IsNew: true,
		},
	}
}

func chilliMenu() []Product {
	return []Product{
		// Burgers
		{ID: "chilli-burger-1", Name: "Chilli Burger Clásica", Price: 89, Brand: BrandChilli, CategoryID: "chilli-burgers", Calories: 650, IsPopular: true,
			Description: "Carne de res 150g, queso cheddar, lechuga, tomate, cebolla y nuestra salsa especial"},
		{ID: "chilli-burger-2", Name: "Doble Chilli", Price: 129, Brand: BrandChilli, CategoryID: "chilli-burgers", Calories: 980, IsPopular: true,
			Description: "Doble carne 300g, doble queso, tocino crujiente, jalapeños y salsa BBQ"},
		{ID: "chilli-burger-3", Name: "Burger Crispy Chicken", Price: 95, Brand: BrandChilli, CategoryID: "chilli-burgers", Calories: 720,
			Description: "Pechuga empanizada, queso suizo, lechuga, tomate y mayonesa de chipotle"},
		{ID: "chilli-burger-4", Name: "Mushroom Swiss", Price: 109, Brand: BrandChilli, CategoryID: "chilli-burgers", Calories: 680, IsNew: true,
			Description: "Carne de res, champiñones salteados, queso suizo y salsa de la casa"},

		// Hot dogs
		{ID: "chilli-hotdog-1", Name: "Hot Dog Clásico", Price: 49, Brand: BrandChilli, CategoryID: "chilli-hotdogs", Calories: 380,
			Description: "Salchicha jumbo, mostaza, ketchup y cebolla picada"},
		{ID: "chilli-hotdog-2", Name: "Chilli Dog", Price: 69, Brand: BrandChilli, CategoryID: "chilli-hotdogs", Calories: 520, IsPopular: true,
			Description: "Salchicha jumbo, chili con carne, queso fundido y jalapeños"},
		{ID: "chilli-hotdog-3", Name: "Hot Dog Bacon Lover", Price: 75, Brand: BrandChilli, CategoryID: "chilli-hotdogs", Calories: 580,
			Description: "Salchicha jumbo envuelta en tocino, queso y cebolla caramelizada"},

		// Fries
		{ID: "chilli-fries-1", Name: "Papas Clásicas", Price: 39, Brand: BrandChilli, CategoryID: "chilli-fries", Calories: 320,
			Description: "Crujientes papas fritas con sal"},
		{ID: "chilli-fries-2", Name: "Chilli Cheese Fries", Price: 69, Brand: BrandChilli, CategoryID: "chilli-fries", Calories: 580, IsPopular: true,
			Description: "Papas con chili con carne, queso cheddar fundido y jalapeños"},
		{ID: "chilli-fries-3", Name: "Loaded Fries", Price: 79, Brand: BrandChilli, CategoryID: "chilli-fries", Calories: 620,
			Description: "Papas con tocino, queso, crema y cebollín"},

		// Mazorcadas
		{ID: "chilli-mazorcada-1", Name: "Mazorcada Clásica", Price: 45, Brand: BrandChilli, CategoryID: "chilli-mazorcadas", Calories: 280, IsPopular: true,
			Description: "Elote asado con mayonesa, queso cotija, chile y limón"},
		{ID: "chilli-mazorcada-2", Name: "Mazorcada Chilli", Price: 55, Brand: BrandChilli, CategoryID: "chilli-mazorcadas", Calories: 340,
			Description: "Elote asado con chili, queso fundido y chipotle"},

		// Nachos
		{ID: "chilli-nachos-1", Name: "Nachos Clásicos", Price: 79, Brand: BrandChilli, CategoryID: "chilli-nachos", Calories: 680,
			Description: "Totopos con queso fundido, jalapeños, crema y guacamole"},
		{ID: "chilli-nachos-2", Name: "Nachos Supremos", Price: 119, Brand: BrandChilli, CategoryID: "chilli-nachos", Calories: 920, IsPopular: true,
			Description: "Totopos con carne, pollo, queso, frijoles, crema, guacamole y pico de gallo"},
	}
}

func beverages() []Product {
	return []Product{
		{ID: "bev-1", Name: "Coca-Cola", Description: "Refresco 355ml", Price: 25, Brand: BrandOhana, CategoryID: "beverages-sodas", Calories: 140},
		{ID: "bev-2", Name: "Coca-Cola Zero", Description: "Refresco sin azúcar 355ml", Price: 25, Brand: BrandOhana, CategoryID: "beverages-sodas"},
		{ID: "bev-3", Name: "Sprite", Description: "Refresco de lima-limón 355ml", Price: 25, Brand: BrandOhana, CategoryID: "beverages-sodas", Calories: 130},
		{ID: "bev-4", Name: "Fanta Naranja", Description: "Refresco de naranja 355ml", Price: 25, Brand: BrandOhana, CategoryID: "beverages-sodas", Calories: 150},

		{ID: "bev-5", Name: "Jugo Verde", Description: "Espinaca, manzana, pepino, jengibre y limón", Price: 55, Brand: BrandOhana, CategoryID: "beverages-juices", Calories: 120, IsVegan: true},
		{ID: "bev-6", Name: "Jugo de Naranja", Description: "Naranja natural recién exprimida", Price: 45, Brand: BrandOhana, CategoryID: "beverages-juices", Calories: 110, IsVegan: true},
		{ID: "bev-7", Name: "Limonada Natural", Description: "Limón fresco, agua y un toque de menta", Price: 35, Brand: BrandOhana, CategoryID: "beverages-juices", Calories: 80, IsVegan: true},
		{ID: "bev-8", Name: "Smoothie Tropical", Description: "Mango, piña, plátano y leche de coco", Price: 65, Brand: BrandOhana, CategoryID: "beverages-juices", Calories: 220, IsVegan: true},

		{ID: "bev-9", Name: "Agua Natural", Description: "Botella 500ml", Price: 20, Brand: BrandOhana, CategoryID: "beverages-water"},
		{ID: "bev-10", Name: "Agua Mineral", Description: "Topo Chico 355ml", Price: 25, Brand: BrandOhana, CategoryID: "beverages-water"},
	}
}
