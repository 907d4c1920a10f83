package category

import "github.com/cleared-dev/smsledger/internal/model"

var defaultTaxonomy = New(defaultRules(), model.CategoryOther)

// Default returns the built-in taxonomy. It is shared and read-only.
func Default() *Taxonomy {
	return defaultTaxonomy
}

func defaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryFood, Keywords: []string{"swiggy", "zomato", "restaurant", "cafe", "food", "dominos", "pizza", "mcdonald", "kfc", "subway"}},
		{Category: model.CategoryTransport, Keywords: []string{"uber", "ola", "rapido", "fuel", "petrol", "diesel", "metro", "taxi", "parking"}},
		{Category: model.CategoryShopping, Keywords: []string{"amazon", "flipkart", "myntra", "ajio", "shop", "mall", "store", "retail"}},
		{Category: model.CategoryEntertainment, Keywords: []string{"netflix", "prime", "hotstar", "spotify", "bookmyshow", "movie", "cinema", "pvr"}},
		{Category: model.CategoryBills, Keywords: []string{"electricity", "water", "gas", "bill", "recharge", "airtel", "jio", "vodafone", "broadband"}},
		{Category: model.CategoryHealthcare, Keywords: []string{"pharmacy", "hospital", "clinic", "doctor", "medical", "medicine", "apollo", "medplus"}},
		{Category: model.CategoryGroceries, Keywords: []string{"grocery", "supermarket", "bigbasket", "grofers", "blinkit", "mart", "dmart"}},
		{Category: model.CategoryEducation, Keywords: []string{"course", "book", "tuition", "education", "udemy", "coursera", "school", "college"}},
	}
}
