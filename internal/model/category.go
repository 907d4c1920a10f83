package model

// Category names an expense category in the fixed taxonomy.
type Category string

const (
	CategoryFood          Category = "Food & Dining"
	CategoryTransport     Category = "Transportation"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills & Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryGroceries     Category = "Groceries"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)
