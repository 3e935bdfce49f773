package service

import (
	"database/sql"
	"errors"

	"github.com/clothera/catalog-api/internal/utils"
)

// AvailabilityItem is one (product id, size name) pair in a batch check.
// Pointer fields distinguish absent fields from zero values so validation can
// reject incomplete items.
type AvailabilityItem struct {
	ID       *int    `json:"id" binding:"required"`
	SizeName *string `json:"sizeName" binding:"required"`
}

// AvailabilityResult is the per-item outcome of a batch check. Product is nil
// when no product exists for the requested id.
type AvailabilityResult struct {
	ID         int                `json:"id"`
	SizeName   string             `json:"sizeName"`
	TotalCount int                `json:"totalCount"`
	Product    *SerializedProduct `json:"product"`
}

// AvailabilityService resolves batches of size-availability checks.
// Stateless; safe for concurrent use.
type AvailabilityService struct {
	store Store
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(store Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// CheckAvailability resolves each input item to its remaining stock count and
// an embedded product record. The output is strictly 1:1 with the input and
// preserves its order. Validation is atomic: an item missing id or sizeName
// rejects the whole batch before any lookups run. Once validation passes,
// missing rows degrade per item (count 0, nil product) instead of failing.
func (s *AvailabilityService) CheckAvailability(items []AvailabilityItem) ([]AvailabilityResult, error) {
	for _, item := range items {
		if item.ID == nil || item.SizeName == nil {
			return nil, utils.ErrInvalidBatchItem
		}
	}

	results := make([]AvailabilityResult, 0, len(items))
	for _, item := range items {
		res := AvailabilityResult{ID: *item.ID, SizeName: *item.SizeName}

		size, err := s.store.SizeFor(*item.ID, *item.SizeName)
		switch {
		case err == nil:
			res.TotalCount = size.Amount
		case errors.Is(err, sql.ErrNoRows):
			// unknown size: count stays 0
		default:
			return nil, err
		}

		product, err := s.store.ProductByID(*item.ID)
		switch {
		case err == nil:
			sp, err := serializeProduct(s.store, *product)
			if err != nil {
				return nil, err
			}
			res.Product = &sp
		case errors.Is(err, sql.ErrNoRows):
			// unknown product: embedded record stays nil
		default:
			return nil, err
		}

		results = append(results, res)
	}
	return results, nil
}
