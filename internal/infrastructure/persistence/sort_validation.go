package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to ASC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField returns sortField when whitelisted, else defaultField.
// Order clauses are built from user input, so only whitelisted columns pass.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// RateSortFields contains allowed sort fields for rates
var RateSortFields = map[string]bool{
	"name":       true,
	"low":        true,
	"high":       true,
	"rate":       true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"species":       true,
	"specification": true,
	"size":          true,
	"low":           true,
	"status":        true,
	"created_at":    true,
	"updated_at":    true,
}
