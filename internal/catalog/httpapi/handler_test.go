package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *mux.Router {
	r := mux.NewRouter()
	NewHandler(app.NewService(memory.NewSeededProductRepo())).Register(r.PathPrefix("/api").Subrouter())
	return r
}

func get(t *testing.T, r http.Handler, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func ids(ps []productJSON) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	r := newRouter()

	t.Run("no params -> whole catalog", func(t *testing.T) {
		var body listResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/products", &body))
		assert.Equal(t, 8, body.Count)
		assert.Equal(t, "129.99", body.Products[0].Price)
	})

	t.Run("max and price-low -> filtered and sorted", func(t *testing.T) {
		var body listResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/products?max=150&sort=price-low", &body))
		assert.Equal(t, []string{"8", "3", "1", "6"}, ids(body.Products))
	})

	t.Run("category and colors -> any match", func(t *testing.T) {
		var body listResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/products?category=men&color=Brown,Khaki", &body))
		assert.Equal(t, []string{"5", "7"}, ids(body.Products))
	})

	t.Run("bad sort -> 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/products?sort=random", nil))
	})

	t.Run("bad min -> 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/products?min=cheap", nil))
	})
}

func TestCategory(t *testing.T) {
	r := newRouter()

	t.Run("accessories -> declaration order", func(t *testing.T) {
		var body listResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/categories/accessories/products", &body))
		assert.Equal(t, []string{"4", "8"}, ids(body.Products))
	})

	t.Run("sale -> everything", func(t *testing.T) {
		var body listResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/categories/sale/products", &body))
		assert.Equal(t, 8, body.Count)
	})

	t.Run("unknown -> 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, r, "/api/categories/kids/products", nil))
	})
}

func TestFeaturedAndNewArrivals(t *testing.T) {
	r := newRouter()

	var featured, arrivals listResponse
	require.Equal(t, http.StatusOK, get(t, r, "/api/products/featured", &featured))
	require.Equal(t, http.StatusOK, get(t, r, "/api/products/new-arrivals", &arrivals))

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(featured.Products))
	assert.Equal(t, []string{"3", "4", "5", "6"}, ids(arrivals.Products))
}

func TestProduct(t *testing.T) {
	r := newRouter()

	t.Run("known -> product with related", func(t *testing.T) {
		var body productResponse
		require.Equal(t, http.StatusOK, get(t, r, "/api/products/1", &body))
		assert.Equal(t, "Elegant Silk Blouse", body.Product.Name)
		assert.Equal(t, []string{"2", "3"}, ids(body.Related))
	})

	t.Run("unknown -> 404", func(t *testing.T) {
		var body struct {
			Error struct{ Code string } `json:"error"`
		}
		require.Equal(t, http.StatusNotFound, get(t, r, "/api/products/99", &body))
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
	})
}

func TestSearch(t *testing.T) {
	r := newRouter()

	t.Run("case-insensitive -> matches", func(t *testing.T) {
		var body struct {
			Products []productJSON `json:"products"`
			Count    int           `json:"count"`
		}
		require.Equal(t, http.StatusOK, get(t, r, "/api/search?q=LEATHER", &body))
		assert.Equal(t, []string{"4", "7"}, ids(body.Products))
	})

	t.Run("blank -> empty", func(t *testing.T) {
		var body struct {
			Products []productJSON `json:"products"`
		}
		require.Equal(t, http.StatusOK, get(t, r, "/api/search?q=+", &body))
		assert.NotNil(t, body.Products)
		assert.Empty(t, body.Products)
	})
}

func TestFacets(t *testing.T) {
	var body struct {
		Sizes  []string `json:"sizes"`
		Colors []string `json:"colors"`
	}
	require.Equal(t, http.StatusOK, get(t, newRouter(), "/api/products/facets", &body))
	assert.Equal(t, []string{"XS", "S", "M", "L", "XL", "One Size", "XXL", "7", "8", "9", "10", "11", "12"}, body.Sizes)
	assert.Equal(t, "Ivory", body.Colors[0])
}
