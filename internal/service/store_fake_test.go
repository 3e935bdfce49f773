package service

import (
	"database/sql"
	"sort"

	"github.com/clothera/catalog-api/internal/models"
)

// memStore is an in-memory Store used by the service tests. Slices keep
// insertion order so retrieval order is deterministic, and distinct lookups
// are returned sorted like their SQL counterparts.
type memStore struct {
	products []models.Product
	sizes    []models.Size
	images   []models.Image
	headers  []models.HeaderImage
}

func (m *memStore) DistinctBrands() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.products {
		if p.Brand != "" && !seen[p.Brand] {
			seen[p.Brand] = true
			out = append(out, p.Brand)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) DistinctCategories() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) DistinctSizeNames() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range m.sizes {
		if !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) PriceRange() (min, max int, err error) {
	for i, p := range m.products {
		if i == 0 || p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, nil
}

func (m *memStore) FindProducts(brands, categories, sizes []string, minPrice, maxPrice int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if !containsString(brands, p.Brand) || !containsString(categories, p.Category) {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		hasSize := false
		for _, s := range m.sizes {
			if s.ProductID == p.ID && containsString(sizes, s.Name) {
				hasSize = true
				break
			}
		}
		if hasSize {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) SizesFor(productID int, names []string) ([]models.Size, error) {
	var out []models.Size
	for _, s := range m.sizes {
		if s.ProductID != productID {
			continue
		}
		if names != nil && !containsString(names, s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) ImagesFor(productID int) ([]models.Image, error) {
	var out []models.Image
	for _, img := range m.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *memStore) HeaderImagesFor(productID int) ([]models.HeaderImage, error) {
	var out []models.HeaderImage
	for _, img := range m.headers {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *memStore) ProductByID(id int) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) SizeFor(productID int, name string) (*models.Size, error) {
	for _, s := range m.sizes {
		if s.ProductID == productID && s.Name == name {
			cp := s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// newTestStore builds the shared catalog fixture. Product 4 has a single
// size row with zero stock so it can never survive stock gating.
func newTestStore() *memStore {
	return &memStore{
		products: []models.Product{
			{ID: 1, Brand: "A", Name: "Anorak", Price: 10, Description: "warm anorak", Category: "X"},
			{ID: 2, Brand: "B", Name: "Blazer", Price: 20, Description: "navy blazer", Category: "Y"},
			{ID: 3, Brand: "A", Name: "Cardigan", Price: 30, Description: "wool cardigan", Category: "X"},
			{ID: 4, Brand: "C", Name: "Dress", Price: 20, Description: "summer dress", Category: "Z"},
			{ID: 5, Brand: "B", Name: "Earmuffs", Price: 5, Description: "fluffy earmuffs", Category: "X"},
			{ID: 6, Brand: "C", Name: "Flannel", Price: 20, Description: "checked flannel", Category: "Z"},
		},
		sizes: []models.Size{
			{ID: 1, ProductID: 1, Name: "S", Amount: 0},
			{ID: 2, ProductID: 1, Name: "M", Amount: 5},
			{ID: 3, ProductID: 2, Name: "S", Amount: 3},
			{ID: 4, ProductID: 3, Name: "L", Amount: 2},
			{ID: 5, ProductID: 3, Name: "M", Amount: 0},
			{ID: 6, ProductID: 4, Name: "S", Amount: 0},
			{ID: 7, ProductID: 5, Name: "M", Amount: 1},
			{ID: 8, ProductID: 6, Name: "L", Amount: 4},
		},
		images: []models.Image{
			{ID: 1, ProductID: 1, Image: "files/anorak-front.jpg"},
			{ID: 2, ProductID: 1, Image: "files/anorak-back.jpg"},
			{ID: 3, ProductID: 2, Image: "files/blazer.jpg"},
		},
		headers: []models.HeaderImage{
			{ID: 1, ProductID: 1, Image: "files/anorak-banner.jpg"},
		},
	}
}
