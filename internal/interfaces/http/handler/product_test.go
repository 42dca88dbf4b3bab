package handler

import (
	"context"
	"net/http"
	"testing"

	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededProduct returns the seeded Black Tiger product with the given
// specification
func seededProduct(t *testing.T, env *testEnv, specification string) appcosting.ProductResponse {
	t.Helper()
	products, _, err := env.products.List(context.Background(), appcosting.ProductListFilter{Search: specification})
	require.NoError(t, err)
	for _, p := range products {
		if p.Specification == specification {
			return p
		}
	}
	t.Fatalf("seeded product %q not found", specification)
	return appcosting.ProductResponse{}
}

func TestProductHandler_List(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var products []appcosting.ProductResponse
	decodeData(t, rec, &products)
	assert.Len(t, products, 2)

	rec = env.do(t, http.MethodGet, "/api/v1/products?search=head%20less", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "16/20", products[0].Size)
	assert.Equal(t, "18-25", products[0].RangeLabel)

	rec = env.do(t, http.MethodGet, "/api/v1/products?status=archived", token, nil)
	requireError(t, rec, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestProductHandler_CreateUpdateToggleDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/products", token, map[string]any{
		"species":          "Vannamei",
		"specification":    "PD",
		"size":             "21/25",
		"glazing":          "85",
		"low":              21,
		"high":             25,
		"reference_weight": "900",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created appcosting.ProductResponse
	decodeData(t, rec, &created)
	assert.Equal(t, "active", created.Status)
	assertDecimal(t, "85", created.Glazing)

	t.Run("glazing out of range", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/products", token, map[string]any{
			"species": "Vannamei", "specification": "PD", "glazing": "120",
			"low": 21, "high": 25, "reference_weight": "900",
		})
		resp := requireError(t, rec, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Equal(t, "Glazing must be greater than 0 and at most 100", resp.Error.Message)
	})

	id := created.ID.String()
	rec = env.do(t, http.MethodPut, "/api/v1/products/"+id, token, map[string]any{
		"species":          "Vannamei",
		"specification":    "PDTO",
		"size":             "21/25",
		"glazing":          "80",
		"low":              21,
		"high":             25,
		"reference_weight": "900",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated appcosting.ProductResponse
	decodeData(t, rec, &updated)
	assert.Equal(t, "PDTO", updated.Specification)

	rec = env.do(t, http.MethodPatch, "/api/v1/products/"+id+"/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggled appcosting.ProductResponse
	decodeData(t, rec, &toggled)
	assert.Equal(t, "inactive", toggled.Status)

	rec = env.do(t, http.MethodGet, "/api/v1/products?status=inactive", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inactive []appcosting.ProductResponse
	decodeData(t, rec, &inactive)
	require.Len(t, inactive, 1)
	assert.Equal(t, created.ID, inactive[0].ID)

	rec = env.do(t, http.MethodDelete, "/api/v1/products/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/products/"+id, token, nil)
	requireError(t, rec, http.StatusNotFound, dto.ErrCodeNotFound)
}
