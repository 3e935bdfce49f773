package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clothera/catalog-api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindFiltered returns products matching the brand/category sets, the
// inclusive price range, and having at least one size row whose name is in
// the size set. The size predicate is a join condition: a product with no
// matching size rows is not returned at all. Retrieval order is by id so
// downstream stable sorting has a deterministic base order.
func (r *ProductRepository) FindFiltered(brands, categories, sizes []string, minPrice, maxPrice int) ([]models.Product, error) {
	const q = `
        SELECT p.* FROM products p
        WHERE p.brand = ANY($1)
          AND p.category = ANY($2)
          AND p.price BETWEEN $3 AND $4
          AND EXISTS (
              SELECT 1 FROM sizes s
              WHERE s.product_id = p.id AND s.name = ANY($5)
          )
        ORDER BY p.id`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var products []models.Product
	if err := stmt.Select(&products, pq.Array(brands), pq.Array(categories), minPrice, maxPrice, pq.Array(sizes)); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetDistinctBrands returns all distinct brands.
func (r *ProductRepository) GetDistinctBrands() ([]string, error) {
	const q = `SELECT DISTINCT brand FROM products WHERE brand != '' ORDER BY brand`
	var brands []string
	if err := r.db.Select(&brands, q); err != nil {
		return nil, err
	}
	return brands, nil
}

// GetDistinctCategories returns all distinct categories.
func (r *ProductRepository) GetDistinctCategories() ([]string, error) {
	const q = `SELECT DISTINCT category FROM products WHERE category != '' ORDER BY category`
	var categories []string
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetPriceRange returns the store-wide minimum and maximum product price.
// An empty catalog yields (0, 0).
func (r *ProductRepository) GetPriceRange() (min, max int, err error) {
	const q = `SELECT COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max FROM products`
	var row struct {
		Min int `db:"min"`
		Max int `db:"max"`
	}
	if err := r.db.Get(&row, q); err != nil {
		return 0, 0, err
	}
	return row.Min, row.Max, nil
}

// Create inserts a product and backfills its generated id. Used by the bulk
// importer only.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `INSERT INTO products (brand, name, price, description, category)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`

	return r.db.QueryRowx(q,
		product.Brand,
		product.Name,
		product.Price,
		product.Description,
		product.Category,
	).Scan(&product.ID)
}
