package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/payment"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = "checkout-session"

type fixture struct {
	router  http.Handler
	cart    *cartapp.Service
	gateway *payment.Simulated
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := catalogapp.NewService(catalogmem.NewSeededProductRepo())
	cart := cartapp.NewService(cartmem.NewCartRepo(time.Hour), cartadapter.NewCatalogServiceReader(catalog))
	gateway := payment.NewSimulated(0)

	svc := app.NewService(
		adapter.NewCartServiceReader(cart),
		adapter.NewCatalogServiceReader(catalog),
		gateway,
		orderapp.NewService(),
		4,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(httpx.Session(false))
	NewHandler(svc).Register(api)
	return &fixture{router: r, cart: cart, gateway: gateway}
}

func (f *fixture) do(method, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/checkout", rd)
	req.AddCookie(&http.Cookie{Name: httpx.SessionCookie, Value: session})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) add(t *testing.T, productID, size, color string) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), session, productID, size, color)
	require.NoError(t, err)
}

const validForm = `{
	"shipping": {
		"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
		"address": "1 Analytical Way", "city": "London", "state": "LDN", "zip_code": "N1"
	},
	"payment": {
		"card_number": "4242 4242 4242 4242", "expiry_date": "12/40", "cvv": "123", "card_name": "Ada Lovelace"
	},
	"save_info": true
}`

func TestQuote(t *testing.T) {
	t.Run("empty cart -> redirect to cart", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodGet, "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, cartPath, rec.Header().Get("Location"))
	})

	t.Run("items -> priced quote", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "8", "One Size", "Gold")

		rec := f.do(http.MethodGet, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var q quoteJSON
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
		assert.Equal(t, "79.99", q.Subtotal)
		assert.Equal(t, "9.99", q.Shipping)
		assert.Equal(t, "6.40", q.Tax)
		assert.Equal(t, "96.38", q.GrandTotal)
		assert.Equal(t, "US", q.DefaultCountry)
		require.Len(t, q.Lines, 1)
		assert.Equal(t, "8-One Size-Gold", q.Lines[0].Key)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("valid -> confirmation and empty cart", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "1", "M", "Navy")

		rec := f.do(http.MethodPost, validForm)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var o orderJSON
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
		assert.Regexp(t, `^ORD-[0-9A-Z]{9}$`, o.Number)
		assert.Equal(t, "129.99", o.Subtotal)
		assert.Equal(t, "0.00", o.Shipping)
		assert.Equal(t, "10.40", o.Tax)
		assert.Equal(t, "140.39", o.Total)
		assert.Equal(t, o.PlacedAt.AddDate(0, 0, 7).Format(time.DateOnly), o.EstimatedDelivery)

		c, err := f.cart.GetCart(context.Background(), session)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("invalid form -> 422 with fields", func(t *testing.T) {
		f := newFixture(t)
		f.add(t, "1", "M", "Navy")

		rec := f.do(http.MethodPost, strings.Replace(validForm, "ada@example.com", "nope", 1))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Error struct {
				Code   string            `json:"code"`
				Fields map[string]string `json:"fields"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, httpx.CodeInvalidForm, body.Error.Code)
		assert.Contains(t, body.Error.Fields, "shipping.email")

		c, _ := f.cart.GetCart(context.Background(), session)
		assert.False(t, c.IsEmpty())
	})

	t.Run("empty cart -> redirect to cart", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodPost, validForm)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("empty cart and invalid form -> redirect to cart", func(t *testing.T) {
		rec := newFixture(t).do(http.MethodPost, `{"shipping":{},"payment":{}}`)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, cartPath, rec.Header().Get("Location"))
	})

	t.Run("declined -> 402, cart kept", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.Decline = func(app.Charge) bool { return true }
		f.add(t, "1", "M", "Navy")

		rec := f.do(http.MethodPost, validForm)
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)

		c, _ := f.cart.GetCart(context.Background(), session)
		assert.Equal(t, 1, c.ItemCount)
	})
}
