package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clothera/catalog-api/internal/models"
)

// SizeRepository handles data access for per-product size rows.
type SizeRepository struct {
	db *sqlx.DB
}

// NewSizeRepository creates a new SizeRepository.
func NewSizeRepository(db *sqlx.DB) *SizeRepository {
	return &SizeRepository{db: db}
}

// GetForProduct returns size rows for a product. When names is non-nil the
// result is restricted to those size names; nil returns all sizes.
func (r *SizeRepository) GetForProduct(productID int, names []string) ([]models.Size, error) {
	q := `SELECT * FROM sizes WHERE product_id = $1`
	args := []interface{}{productID}
	if names != nil {
		q += ` AND name = ANY($2)`
		args = append(args, pq.Array(names))
	}
	q += ` ORDER BY id`

	var sizes []models.Size
	if err := r.db.Select(&sizes, q, args...); err != nil {
		return nil, err
	}
	return sizes, nil
}

// Get returns the size row for (productID, name).
func (r *SizeRepository) Get(productID int, name string) (*models.Size, error) {
	const q = `SELECT * FROM sizes WHERE product_id = $1 AND name = $2 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var s models.Size
	if err := stmt.Get(&s, productID, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &s, nil
}

// GetDistinctNames returns all distinct size names across products.
func (r *SizeRepository) GetDistinctNames() ([]string, error) {
	const q = `SELECT DISTINCT name FROM sizes ORDER BY name`
	var names []string
	if err := r.db.Select(&names, q); err != nil {
		return nil, err
	}
	return names, nil
}

// Create inserts a size row. Used by the bulk importer only.
func (r *SizeRepository) Create(size *models.Size) error {
	const q = `INSERT INTO sizes (product_id, name, amount)
              VALUES ($1, $2, $3)
              ON CONFLICT (product_id, name) DO UPDATE SET amount = EXCLUDED.amount
              RETURNING id`

	return r.db.QueryRowx(q, size.ProductID, size.Name, size.Amount).Scan(&size.ID)
}
