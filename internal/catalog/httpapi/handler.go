package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the catalog routes on r, normally the /api subrouter.
// The fixed product paths are added before /products/{id} so they are not
// taken for ids.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/products", h.browse).Methods(http.MethodGet)
	r.HandleFunc("/products/featured", h.featured).Methods(http.MethodGet)
	r.HandleFunc("/products/new-arrivals", h.newArrivals).Methods(http.MethodGet)
	r.HandleFunc("/products/facets", h.facets).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.product).Methods(http.MethodGet)
	r.HandleFunc("/categories/{category}/products", h.category).Methods(http.MethodGet)
	r.HandleFunc("/search", h.search).Methods(http.MethodGet)
}

type productJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	InStock     bool     `json:"in_stock"`
}

func toJSON(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Category:    string(p.Category),
		Description: p.Description,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		InStock:     p.InStock,
	}
}

func toJSONList(ps []domain.Product) []productJSON {
	out := make([]productJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toJSON(p))
	}
	return out
}

type listResponse struct {
	Products []productJSON `json:"products"`
	Count    int           `json:"count"`
}

func writeList(w http.ResponseWriter, ps []domain.Product) {
	httpx.WriteJSON(w, http.StatusOK, listResponse{Products: toJSONList(ps), Count: len(ps)})
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := domain.CategorySale
	if c := q.Get("category"); c != "" {
		category = domain.Category(strings.ToLower(c))
	}

	f, err := parseFilter(r, category)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ps, err := h.svc.Browse(r.Context(), f)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	writeList(w, ps)
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(strings.ToLower(mux.Vars(r)["category"]))
	if !category.Valid() {
		httpx.WriteError(w, r, httpx.NewError(http.StatusNotFound, httpx.CodeNotFound, "unknown category"))
		return
	}

	var (
		ps  []domain.Product
		err error
	)
	if category == domain.CategorySale {
		ps, err = h.svc.Browse(r.Context(), domain.DefaultFilter(category))
	} else {
		ps, err = h.svc.ProductsByCategory(r.Context(), category)
	}
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	writeList(w, ps)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.FeaturedProducts(r.Context())
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	writeList(w, ps)
}

func (h *Handler) newArrivals(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.NewArrivals(r.Context())
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	writeList(w, ps)
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Facets(r.Context())
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"sizes":     f.Sizes,
		"colors":    f.Colors,
		"min_price": domain.DefaultMinPrice.StringFixed(2),
		"max_price": domain.DefaultMaxPrice.StringFixed(2),
	})
}

type productResponse struct {
	Product productJSON   `json:"product"`
	Related []productJSON `json:"related"`
}

func (h *Handler) product(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	related, err := h.svc.RelatedProducts(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, productResponse{Product: toJSON(p), Related: toJSONList(related)})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	ps, err := h.svc.Search(r.Context(), query)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"products": toJSONList(ps),
		"count":    len(ps),
	})
}

func parseFilter(r *http.Request, category domain.Category) (domain.Filter, error) {
	q := r.URL.Query()
	f := domain.DefaultFilter(category)

	var err error
	if v := q.Get("min"); v != "" {
		if f.MinPrice, err = decimal.NewFromString(v); err != nil {
			return f, httpx.BadRequest("min must be a number")
		}
	}
	if v := q.Get("max"); v != "" {
		if f.MaxPrice, err = decimal.NewFromString(v); err != nil {
			return f, httpx.BadRequest("max must be a number")
		}
	}
	if v := q.Get("sort"); v != "" {
		f.Sort = domain.SortOrder(v)
	}
	f.Sizes = multi(q["size"])
	f.Colors = multi(q["color"])
	return f, nil
}

// multi accepts both repeated parameters and comma separated values.
func multi(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return httpx.NewError(http.StatusBadRequest, httpx.CodeInvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return httpx.NewError(http.StatusNotFound, httpx.CodeNotFound, "product not found")
	default:
		return err
	}
}
