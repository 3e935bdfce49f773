package models

// Size is a per-product size row with its remaining stock. The size name is
// unique within a product.
type Size struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"sizeName"`
	Amount    int    `db:"amount" json:"amountSize"`
}

// InStock reports whether the size has remaining stock.
func (s Size) InStock() bool {
	return s.Amount > 0
}
