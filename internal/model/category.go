package model

// Category organizes transactions for budgeting and reporting.
type Category struct {
	ID              string
	Name            string // unique
	Group           string
	IsSystemDefault bool
}

// DefaultCategories returns the seed category set installed for a new
// project. Names line up with the built-in seed corpus so cold-start
// predictions always resolve to a real category.
func DefaultCategories() []Category {
	names := []struct {
		name  string
		group string
	}{
		{"Income", "Income"},
		{"Groceries", "Essentials"},
		{"Rent", "Essentials"},
		{"Utilities", "Essentials"},
		{"Phone/Internet", "Essentials"},
		{"Healthcare", "Essentials"},
		{"Gas", "Transport"},
		{"Uber/Lyft", "Transport"},
		{"Tolls", "Transport"},
		{"Travel", "Transport"},
		{"Coffee", "Food & Drink"},
		{"Eating Out", "Food & Drink"},
		{"Alcohol", "Food & Drink"},
		{"Shopping", "Lifestyle"},
		{"Subscriptions", "Lifestyle"},
		{"Entertainment", "Lifestyle"},
		{"Gym", "Lifestyle"},
		{"Investments", "Finance"},
		{"Credit Card Payment", "Finance"},
		{"Loan Payment", "Finance"},
		{"Transfer", "Finance"},
		{"ATM", "Finance"},
		{"Venmo", "Finance"},
		{"Uncategorized", "Uncategorized"},
	}

	cats := make([]Category, 0, len(names))
	for _, n := range names {
		cats = append(cats, Category{
			Name:            n.name,
			Group:           n.group,
			IsSystemDefault: true,
		})
	}
	return cats
}
