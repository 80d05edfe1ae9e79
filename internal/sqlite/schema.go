package sqlite

// Schema DDL. Statements are idempotent so Attach can run them against an
// existing database.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    category_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    item_id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL,
    title TEXT NOT NULL,
    link TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (category_id) REFERENCES categories(category_id) ON DELETE CASCADE
);`

	idxItemsCategory = `CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createItems,
	idxItemsCategory,
}

// Column lists shared by queries, export and import.
const (
	categoryColumns = "category_id, name, created_at"
	itemColumns     = "item_id, category_id, title, link, created_at"
)
