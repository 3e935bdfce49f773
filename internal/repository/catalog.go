package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/clothera/catalog-api/internal/models"
)

// Catalog aggregates the product, size and image repositories behind the
// read-only query surface the services consume.
type Catalog struct {
	products *ProductRepository
	sizes    *SizeRepository
	images   *ImageRepository
}

// NewCatalog creates a Catalog over a shared database handle.
func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{
		products: NewProductRepository(db),
		sizes:    NewSizeRepository(db),
		images:   NewImageRepository(db),
	}
}

// DistinctBrands returns all distinct brand values.
func (c *Catalog) DistinctBrands() ([]string, error) {
	return c.products.GetDistinctBrands()
}

// DistinctCategories returns all distinct category values.
func (c *Catalog) DistinctCategories() ([]string, error) {
	return c.products.GetDistinctCategories()
}

// DistinctSizeNames returns all distinct size names across products.
func (c *Catalog) DistinctSizeNames() ([]string, error) {
	return c.sizes.GetDistinctNames()
}

// PriceRange returns the store-wide minimum and maximum product price.
func (c *Catalog) PriceRange() (min, max int, err error) {
	return c.products.GetPriceRange()
}

// FindProducts returns candidate products for a fully-populated filter.
func (c *Catalog) FindProducts(brands, categories, sizes []string, minPrice, maxPrice int) ([]models.Product, error) {
	return c.products.FindFiltered(brands, categories, sizes, minPrice, maxPrice)
}

// SizesFor returns size rows for a product, optionally restricted by name.
func (c *Catalog) SizesFor(productID int, names []string) ([]models.Size, error) {
	return c.sizes.GetForProduct(productID, names)
}

// ImagesFor returns the gallery images of a product.
func (c *Catalog) ImagesFor(productID int) ([]models.Image, error) {
	return c.images.GetForProduct(productID)
}

// HeaderImagesFor returns the header images of a product.
func (c *Catalog) HeaderImagesFor(productID int) ([]models.HeaderImage, error) {
	return c.images.GetHeadersForProduct(productID)
}

// ProductByID returns a product by id, or sql.ErrNoRows when absent.
func (c *Catalog) ProductByID(id int) (*models.Product, error) {
	return c.products.GetByID(id)
}

// SizeFor returns the size row for (productID, name), or sql.ErrNoRows when absent.
func (c *Catalog) SizeFor(productID int, name string) (*models.Size, error) {
	return c.sizes.Get(productID, name)
}
