package httpapi

import (
	"errors"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/cart", h.get).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.add).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{key}", h.remove).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items/{key}", h.updateLine).Methods(http.MethodPatch)
	r.HandleFunc("/cart/products/{id}/quantity", h.updateProduct).Methods(http.MethodPut)
}

type lineJSON struct {
	Key       string `json:"key"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type summaryJSON struct {
	Subtotal             string `json:"subtotal"`
	Shipping             string `json:"shipping"`
	Tax                  string `json:"tax"`
	GrandTotal           string `json:"grand_total"`
	AmountToFreeShipping string `json:"amount_to_free_shipping"`
}

type cartJSON struct {
	Items     []lineJSON  `json:"items"`
	Total     string      `json:"total"`
	ItemCount int         `json:"item_count"`
	Summary   summaryJSON `json:"summary"`
}

func toJSON(c domain.Cart) cartJSON {
	items := make([]lineJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, lineJSON{
			Key:       it.Key().String(),
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Category:  it.Category,
			Price:     it.Price.StringFixed(2),
			Size:      it.SelectedSize,
			Color:     it.SelectedColor,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}

	s := checkoutdomain.Summarize(c.Total)
	return cartJSON{
		Items:     items,
		Total:     c.Total.StringFixed(2),
		ItemCount: c.ItemCount,
		Summary: summaryJSON{
			Subtotal:             s.Subtotal.StringFixed(2),
			Shipping:             s.Shipping.StringFixed(2),
			Tax:                  s.Tax.StringFixed(2),
			GrandTotal:           s.GrandTotal.StringFixed(2),
			AmountToFreeShipping: s.AmountToFreeShipping.StringFixed(2),
		},
	}
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, c domain.Cart, err error) {
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCart(r.Context(), httpx.SessionID(r.Context()))
	h.reply(w, r, c, err)
}

type addRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.svc.AddItem(r.Context(), httpx.SessionID(r.Context()), req.ProductID, req.Size, req.Color)
	h.reply(w, r, c, err)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.RemoveItem(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["key"])
	h.reply(w, r, c, err)
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func decodeQuantity(w http.ResponseWriter, r *http.Request) (int, error) {
	var req quantityRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return 0, err
	}
	if req.Quantity == nil {
		return 0, httpx.BadRequest("quantity is required")
	}
	return *req.Quantity, nil
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	q, err := decodeQuantity(w, r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.svc.UpdateLineQuantity(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["key"], q)
	h.reply(w, r, c, err)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	q, err := decodeQuantity(w, r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.svc.UpdateQuantity(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["id"], q)
	h.reply(w, r, c, err)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ClearCart(r.Context(), httpx.SessionID(r.Context()))
	h.reply(w, r, c, err)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrSelectionRequired), errors.Is(err, app.ErrInvalidInput):
		return httpx.NewError(http.StatusBadRequest, httpx.CodeInvalidArgument, err.Error())
	case errors.Is(err, app.ErrProductNotFound):
		return httpx.NewError(http.StatusNotFound, httpx.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrOutOfStock):
		return httpx.NewError(http.StatusConflict, httpx.CodeConflict, err.Error())
	default:
		return err
	}
}
