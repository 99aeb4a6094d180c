package domain

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ValidKind reports whether k is a known transaction kind.
func ValidKind(k Kind) bool {
	return k == KindIncome || k == KindExpense
}

// Category is one of the fixed transaction categories. The set is
// partitioned into income and expense categories; a transaction's
// category must belong to the partition matching its kind.
type Category string

const (
	CategorySalary      Category = "salary"
	CategoryGift        Category = "gift"
	CategoryOtherIncome Category = "other-income"

	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryClothing      Category = "clothing"
	CategoryOtherExpense  Category = "other-expense"
)

type categoryInfo struct {
	kind  Kind
	color string
}

// The single authoritative category table. Every partition or color
// lookup in the codebase goes through this map.
var categories = map[Category]categoryInfo{
	CategorySalary:      {KindIncome, "#4caf50"},
	CategoryGift:        {KindIncome, "#9c27b0"},
	CategoryOtherIncome: {KindIncome, "#2196f3"},

	CategoryFood:          {KindExpense, "#ff9800"},
	CategoryTransport:     {KindExpense, "#607d8b"},
	CategoryEntertainment: {KindExpense, "#e91e63"},
	CategoryBills:         {KindExpense, "#f44336"},
	CategoryHealth:        {KindExpense, "#00bcd4"},
	CategoryEducation:     {KindExpense, "#3f51b5"},
	CategoryClothing:      {KindExpense, "#795548"},
	CategoryOtherExpense:  {KindExpense, "#9e9e9e"},
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Kind returns the partition (income or expense) the category belongs to.
func (c Category) Kind() Kind {
	return categories[c].kind
}

// Color returns the display color associated with the category.
func (c Category) Color() string {
	return categories[c].color
}

// ExpenseCategories returns the expense partition in a stable order.
func ExpenseCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealth,
		CategoryEducation,
		CategoryClothing,
		CategoryOtherExpense,
	}
}

// IncomeCategories returns the income partition in a stable order.
func IncomeCategories() []Category {
	return []Category{
		CategorySalary,
		CategoryGift,
		CategoryOtherIncome,
	}
}
