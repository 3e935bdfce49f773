package models

// Image is a gallery image reference owned by a product.
type Image struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"productId"`
	Image     string `db:"image" json:"image"`
}

// HeaderImage is a banner image reference owned by a product. Stored apart
// from gallery images because the storefront renders them separately.
type HeaderImage struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"productId"`
	Image     string `db:"image" json:"image"`
}
