package service

import "github.com/clothera/catalog-api/internal/models"

// SizeAmount is the (size name, remaining stock) pair exposed to clients.
type SizeAmount struct {
	Name   string `json:"sizeName"`
	Amount int    `json:"amountSize"`
}

// SerializedProduct is the client-facing projection of a product together
// with its images and all of its sizes. Derived per request, never stored.
type SerializedProduct struct {
	ID           int          `json:"id"`
	Brand        string       `json:"brand"`
	Name         string       `json:"name"`
	Price        int          `json:"price"`
	Description  string       `json:"description"`
	Images       []string     `json:"images"`
	HeaderImages []string     `json:"headerImages"`
	Sizes        []SizeAmount `json:"sizes"`
	InStock      bool         `json:"inStock"`
	Category     string       `json:"category"`
}

// serializeProduct flattens a product row with its images and the complete
// size list. All sizes are included regardless of any size filter on the
// listing: clients see the full availability picture. InStock is true when
// any size has remaining stock.
func serializeProduct(store Store, p models.Product) (SerializedProduct, error) {
	images, err := store.ImagesFor(p.ID)
	if err != nil {
		return SerializedProduct{}, err
	}
	headers, err := store.HeaderImagesFor(p.ID)
	if err != nil {
		return SerializedProduct{}, err
	}
	sizes, err := store.SizesFor(p.ID, nil)
	if err != nil {
		return SerializedProduct{}, err
	}

	out := SerializedProduct{
		ID:           p.ID,
		Brand:        p.Brand,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Images:       make([]string, 0, len(images)),
		HeaderImages: make([]string, 0, len(headers)),
		Sizes:        make([]SizeAmount, 0, len(sizes)),
		Category:     p.Category,
	}
	for _, img := range images {
		out.Images = append(out.Images, img.Image)
	}
	for _, img := range headers {
		out.HeaderImages = append(out.HeaderImages, img.Image)
	}
	for _, s := range sizes {
		out.Sizes = append(out.Sizes, SizeAmount{Name: s.Name, Amount: s.Amount})
		if s.InStock() {
			out.InStock = true
		}
	}
	return out, nil
}
