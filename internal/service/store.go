package service

import "github.com/clothera/catalog-api/internal/models"

// Store is the read-only query surface of the catalog that the services
// depend on. *repository.Catalog is the production implementation; tests use
// an in-memory fake. Lookups that can miss return sql.ErrNoRows, matching
// the repository layer.
type Store interface {
	DistinctBrands() ([]string, error)
	DistinctCategories() ([]string, error)
	DistinctSizeNames() ([]string, error)
	PriceRange() (min, max int, err error)
	FindProducts(brands, categories, sizes []string, minPrice, maxPrice int) ([]models.Product, error)
	SizesFor(productID int, names []string) ([]models.Size, error)
	ImagesFor(productID int) ([]models.Image, error)
	HeaderImagesFor(productID int) ([]models.HeaderImage, error)
	ProductByID(id int) (*models.Product, error)
	SizeFor(productID int, name string) (*models.Size, error)
}
