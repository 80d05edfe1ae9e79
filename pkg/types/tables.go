package types

// Standard table names for Cupboard.GetTable.
const (
	TableCategories = "categories"
	TableItems      = "items"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableCategories,
	TableItems,
}

// Fetch filter keys understood by the standard tables.
const (
	FilterName          = "name"           // categories: exact name
	FilterCategoryID    = "category_id"    // items: owning category
	FilterTitleContains = "title_contains" // items: folded substring of title
	FilterLimit         = "limit"
	FilterOffset        = "offset"
)
