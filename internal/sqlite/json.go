// JSON record structures for the JSONL export format.
package sqlite

// JSONL file names written by Export and read by Import.
const (
	categoriesJSONL = "categories.jsonl"
	itemsJSONL      = "items.jsonl"
)

// categoryJSON represents a category in categories.jsonl.
type categoryJSON struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}

// itemJSON represents an item in items.jsonl.
type itemJSON struct {
	ItemID     string `json:"item_id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	CreatedAt  string `json:"created_at"`
}
