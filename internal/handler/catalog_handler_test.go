package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clothera/catalog-api/internal/models"
	"github.com/clothera/catalog-api/internal/service"
)

// stubStore is a minimal in-memory service.Store for handler tests.
type stubStore struct {
	products []models.Product
	sizes    []models.Size
}

func (s *stubStore) DistinctBrands() ([]string, error) {
	return []string{"A", "B"}, nil
}

func (s *stubStore) DistinctCategories() ([]string, error) {
	return []string{"X", "Y"}, nil
}

func (s *stubStore) DistinctSizeNames() ([]string, error) {
	return []string{"M", "S"}, nil
}

func (s *stubStore) PriceRange() (int, int, error) {
	return 10, 20, nil
}

func (s *stubStore) FindProducts(brands, categories, sizes []string, minPrice, maxPrice int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		for _, size := range s.sizes {
			if size.ProductID != p.ID {
				continue
			}
			match := false
			for _, name := range sizes {
				if name == size.Name {
					match = true
					break
				}
			}
			if match {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *stubStore) SizesFor(productID int, names []string) ([]models.Size, error) {
	var out []models.Size
	for _, size := range s.sizes {
		if size.ProductID != productID {
			continue
		}
		if names != nil {
			match := false
			for _, name := range names {
				if name == size.Name {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, size)
	}
	return out, nil
}

func (s *stubStore) ImagesFor(int) ([]models.Image, error) {
	return nil, nil
}

func (s *stubStore) HeaderImagesFor(int) ([]models.HeaderImage, error) {
	return nil, nil
}

func (s *stubStore) ProductByID(id int) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubStore) SizeFor(productID int, name string) (*models.Size, error) {
	for _, size := range s.sizes {
		if size.ProductID == productID && size.Name == name {
			cp := size
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := &stubStore{
		products: []models.Product{
			{ID: 1, Brand: "A", Name: "Anorak", Price: 10, Category: "X"},
			{ID: 2, Brand: "B", Name: "Blazer", Price: 20, Category: "Y"},
		},
		sizes: []models.Size{
			{ID: 1, ProductID: 1, Name: "S", Amount: 0},
			{ID: 2, ProductID: 1, Name: "M", Amount: 5},
			{ID: 3, ProductID: 2, Name: "S", Amount: 3},
		},
	}
	h := NewCatalogHandler(
		service.NewCatalogService(store, nil),
		service.NewAvailabilityService(store),
	)

	router := gin.New()
	router.POST("/v1/catalog/products", h.ListProducts)
	router.GET("/v1/catalog/products/:id", h.GetProduct)
	router.POST("/v1/catalog/availability", h.CheckAvailability)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestListProducts(t *testing.T) {
	router := newTestRouter()

	t.Run("empty body lists the stocked catalog", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodPost, "/v1/catalog/products", "")
		assert.Equal(t, http.StatusOK, w.Code)

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, float64(2), data["total"])
		assert.Len(t, data["products"], 2)
	})

	t.Run("size filter applies stock gating", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodPost, "/v1/catalog/products",
			`{"included_sizes":["S"],"page":1,"size":10}`)
		assert.Equal(t, http.StatusOK, w.Code)

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["total"])
		products := data["products"].([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, float64(2), products[0].(map[string]interface{})["id"])
	})

	t.Run("invalid pagination", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodPost, "/v1/catalog/products",
			`{"page":-1,"size":10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodPost, "/v1/catalog/products", `{"page":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter()

	t.Run("existing product", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodGet, "/v1/catalog/products/1", "")
		assert.Equal(t, http.StatusOK, w.Code)

		product := envelope["data"].(map[string]interface{})["product"].(map[string]interface{})
		assert.Equal(t, "Anorak", product["name"])
		assert.Equal(t, true, product["inStock"])
	})

	t.Run("unknown product", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodGet, "/v1/catalog/products/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo := envelope["error"].(map[string]interface{})
		assert.Equal(t, "PRODUCT_NOT_FOUND", errInfo["code"])
	})

	t.Run("non-integer id", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodGet, "/v1/catalog/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckAvailability(t *testing.T) {
	router := newTestRouter()

	t.Run("valid batch", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodPost, "/v1/catalog/availability",
			`[{"id":1,"sizeName":"S"},{"id":2,"sizeName":"S"},{"id":999,"sizeName":"S"}]`)
		assert.Equal(t, http.StatusOK, w.Code)

		items := envelope["data"].(map[string]interface{})["items"].([]interface{})
		require.Len(t, items, 3)

		first := items[0].(map[string]interface{})
		assert.Equal(t, float64(0), first["totalCount"])
		assert.NotNil(t, first["product"])

		second := items[1].(map[string]interface{})
		assert.Equal(t, float64(3), second["totalCount"])

		third := items[2].(map[string]interface{})
		assert.Equal(t, float64(0), third["totalCount"])
		assert.Nil(t, third["product"])
	})

	t.Run("item missing sizeName fails the whole batch", func(t *testing.T) {
		w, envelope := doRequest(t, router, http.MethodPost, "/v1/catalog/availability",
			`[{"id":1,"sizeName":"S"},{"id":2}]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("non-list body", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodPost, "/v1/catalog/availability", `{"id":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
