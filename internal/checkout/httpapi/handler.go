package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/gorilla/mux"
)

const cartPath = "/api/cart"

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/checkout", h.quote).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.placeOrder).Methods(http.MethodPost)
}

type lineJSON struct {
	Key       string `json:"key"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type quoteJSON struct {
	Lines                []lineJSON `json:"lines"`
	ItemCount            int64      `json:"item_count"`
	Subtotal             string     `json:"subtotal"`
	Shipping             string     `json:"shipping"`
	Tax                  string     `json:"tax"`
	GrandTotal           string     `json:"grand_total"`
	AmountToFreeShipping string     `json:"amount_to_free_shipping"`
	DefaultCountry       string     `json:"default_country"`
}

func toQuoteJSON(q domain.Quote) quoteJSON {
	lines := make([]lineJSON, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, lineJSON{
			Key:       l.Key,
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			LineTotal: l.LineTotal.StringFixed(2),
		})
	}
	return quoteJSON{
		Lines:                lines,
		ItemCount:            q.ItemCount,
		Subtotal:             q.Subtotal.StringFixed(2),
		Shipping:             q.Shipping.StringFixed(2),
		Tax:                  q.Tax.StringFixed(2),
		GrandTotal:           q.GrandTotal.StringFixed(2),
		AmountToFreeShipping: q.AmountToFreeShipping.StringFixed(2),
		DefaultCountry:       domain.DefaultCountry,
	}
}

type orderItemJSON struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type orderJSON struct {
	Number            string          `json:"order_number"`
	Status            string          `json:"status"`
	Email             string          `json:"email"`
	Items             []orderItemJSON `json:"items"`
	ItemCount         int64           `json:"item_count"`
	Subtotal          string          `json:"subtotal"`
	Shipping          string          `json:"shipping"`
	Tax               string          `json:"tax"`
	Total             string          `json:"total"`
	PaymentReference  string          `json:"payment_reference"`
	PlacedAt          time.Time       `json:"placed_at"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}

func toOrderJSON(o orderdomain.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, orderItemJSON{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			UnitPrice: it.UnitAmount.StringFixed(2),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotalAmount.StringFixed(2),
		})
	}
	return orderJSON{
		Number:            o.Number,
		Status:            o.Status,
		Email:             o.Email,
		Items:             items,
		ItemCount:         o.ItemCount,
		Subtotal:          o.SubTotalAmount.StringFixed(2),
		Shipping:          o.ShippingAmount.StringFixed(2),
		Tax:               o.TaxAmount.StringFixed(2),
		Total:             o.TotalAmount.StringFixed(2),
		PaymentReference:  o.PaymentReference,
		PlacedAt:          o.PlacedAt,
		EstimatedDelivery: o.EstimatedDelivery.Format(time.DateOnly),
	}
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Quote(r.Context(), httpx.SessionID(r.Context()))
	if errors.Is(err, app.ErrEmptyCart) {
		http.Redirect(w, r, cartPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toQuoteJSON(q))
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var form domain.Form
	if err := httpx.DecodeJSON(w, r, &form); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	o, err := h.svc.PlaceOrder(r.Context(), httpx.SessionID(r.Context()), form)
	if errors.Is(err, app.ErrEmptyCart) {
		http.Redirect(w, r, cartPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOrderJSON(o))
}

func mapErr(err error) error {
	var fe *app.FormError
	switch {
	case errors.As(err, &fe):
		he := httpx.NewError(http.StatusUnprocessableEntity, httpx.CodeInvalidForm, app.ErrInvalidForm.Error())
		he.Fields = fe.Fields
		return he
	case errors.Is(err, app.ErrPaymentDeclined):
		return httpx.NewError(http.StatusPaymentRequired, httpx.CodePaymentDeclined, "payment was declined")
	case errors.Is(err, app.ErrPaymentUnavailable):
		return httpx.NewError(http.StatusServiceUnavailable, httpx.CodeUnavailable, "payment service unavailable, try again shortly")
	default:
		return err
	}
}
