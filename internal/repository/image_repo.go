package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/clothera/catalog-api/internal/models"
)

// ImageRepository handles data access for product gallery and header images.
type ImageRepository struct {
	db *sqlx.DB
}

// NewImageRepository creates a new ImageRepository.
func NewImageRepository(db *sqlx.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// GetForProduct returns the gallery images of a product.
func (r *ImageRepository) GetForProduct(productID int) ([]models.Image, error) {
	const q = `SELECT * FROM images WHERE product_id = $1 ORDER BY id`
	var images []models.Image
	if err := r.db.Select(&images, q, productID); err != nil {
		return nil, err
	}
	return images, nil
}

// GetHeadersForProduct returns the header images of a product.
func (r *ImageRepository) GetHeadersForProduct(productID int) ([]models.HeaderImage, error) {
	const q = `SELECT * FROM header_images WHERE product_id = $1 ORDER BY id`
	var images []models.HeaderImage
	if err := r.db.Select(&images, q, productID); err != nil {
		return nil, err
	}
	return images, nil
}

// Create inserts a gallery image row. Used by the bulk importer only.
func (r *ImageRepository) Create(image *models.Image) error {
	const q = `INSERT INTO images (product_id, image) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowx(q, image.ProductID, image.Image).Scan(&image.ID)
}

// CreateHeader inserts a header image row. Used by the bulk importer only.
func (r *ImageRepository) CreateHeader(image *models.HeaderImage) error {
	const q = `INSERT INTO header_images (product_id, image) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowx(q, image.ProductID, image.Image).Scan(&image.ID)
}
