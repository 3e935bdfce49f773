package models

// Product represents a catalog product row. Products are written by the bulk
// importer only; the query side never mutates them.
type Product struct {
	ID          int    `db:"id" json:"id"`
	Brand       string `db:"brand" json:"brand"`
	Name        string `db:"name" json:"name"`
	Price       int    `db:"price" json:"price"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
}
