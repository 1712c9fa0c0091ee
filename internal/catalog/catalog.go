// Package catalog holds the built-in drink reference list used by
// clients to prefill units when logging a drink.
package catalog

// Definition describes one reference drink with its typical serving
// volume, strength and unit count.
type Definition struct {
	Name   string  `json:"name"`
	Volume string  `json:"volume"`
	ABV    string  `json:"abv"`
	Units  float64 `json:"units"`
}

// Category groups reference drinks by kind.
type Category struct {
	Name   string       `json:"name"`
	Drinks []Definition `json:"drinks"`
}

var categories = []Category{
	{
		Name: "Beer / Lager / Cider",
		Drinks: []Definition{
			{Name: "Half pint (284ml) standard lager", Volume: "284ml", ABV: "3.5%", Units: 1.0},
			{Name: "Pint of lager", Volume: "568ml", ABV: "4%", Units: 2.3},
			{Name: "Pint of strong beer (e.g. IPA)", Volume: "568ml", ABV: "5.2%", Units: 3.0},
			{Name: "Bottle of beer (330ml)", Volume: "330ml", ABV: "5%", Units: 1.7},
			{Name: "Can of strong cider (500ml)", Volume: "500ml", ABV: "7.5%", Units: 3.8},
		},
	},
	{
		Name: "Wine",
		Drinks: []Definition{
			{Name: "Small glass (125ml) red/white wine", Volume: "125ml", ABV: "12%", Units: 1.5},
			{Name: "Medium glass (175ml)", Volume: "175ml", ABV: "13%", Units: 2.3},
			{Name: "Large glass (250ml)", Volume: "250ml", ABV: "14%", Units: 3.5},
			{Name: "Bottle of wine (750ml)", Volume: "750ml", ABV: "13.5%", Units: 10.0},
		},
	},
	{
		Name: "Spirits & Shots",
		Drinks: []Definition{
			{Name: "Single shot (25ml) of spirit", Volume: "25ml", ABV: "40%", Units: 1.0},
			{Name: "Double shot (50ml)", Volume: "50ml", ABV: "40%", Units: 2.0},
			{Name: "Liqueur (50ml)", Volume: "50ml", ABV: "20%", Units: 1.0},
		},
	},
	{
		Name: "Cocktails (approximate)",
		Drinks: []Definition{
			{Name: "Margarita", Volume: "~125ml", ABV: "~33%", Units: 2.1},
			{Name: "Mojito", Volume: "~200ml", ABV: "~10%", Units: 2.0},
			{Name: "Negroni (served 90ml)", Volume: "90ml", ABV: "~26%", Units: 2.3},
			{Name: "Long Island Iced Tea", Volume: "~250ml", ABV: "~22%", Units: 4.0},
		},
	},
	{
		Name: "Fortified & Other Wines",
		Drinks: []Definition{
			{Name: "Glass of Port/Sherry (50ml)", Volume: "50ml", ABV: "20%", Units: 1.0},
			{Name: "Small glass of sweet wine", Volume: "100ml", ABV: "15%", Units: 1.5},
		},
	},
}

// Categories returns the full reference list.
func Categories() []Category {
	return categories
}

// Lookup finds a definition by name, for attaching volume/abv attributes
// to a logged drink. Returns nil when the name is not in the catalog.
func Lookup(name string) *Definition {
	for _, c := range categories {
		for i := range c.Drinks {
			if c.Drinks[i].Name == name {
				return &c.Drinks[i]
			}
		}
	}
	return nil
}
