package costing

import (
	"fmt"

	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// Costing domain errors
var (
	ErrRateNotFound    = shared.NewDomainError("RATE_NOT_FOUND", "No rate bracket contains the requested quantity")
	ErrProductNotFound = shared.NewDomainError("NOT_FOUND", "Product not found")
	ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")

	ErrInvalidActualWeight = shared.NewDomainError("INVALID_ACTUAL_WEIGHT", "Actual weight must be positive")

	errSizeCountTooLarge = shared.NewDomainError("INVALID_SIZE_RANGE", fmt.Sprintf("Size count cannot exceed %d", MaxSizeCount))
)

// NewNoRatesForRangeError reports a size range that no rate bracket covers.
func NewNoRatesForRangeError(low, high int) *shared.DomainError {
	return shared.NewDomainError("NO_RATES_FOR_RANGE", fmt.Sprintf("No rates found for size range %d-%d", low, high))
}
