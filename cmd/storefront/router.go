package main

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	carthttp "github.com/dwikikusuma/storefront/internal/cart/httpapi"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/storefront/internal/catalog/httpapi"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkouthttp "github.com/dwikikusuma/storefront/internal/checkout/httpapi"
	"github.com/dwikikusuma/storefront/pkg/httpx"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/gorilla/mux"
)

type routerDeps struct {
	log          *slog.Logger
	metrics      *metrics.Metrics
	ready        *atomic.Bool
	cookieSecure bool

	catalog  *catalogapp.Service
	cart     *cartapp.Service
	checkout *checkoutapp.Service
}

func newRouter(d routerDeps) http.Handler {
	root := mux.NewRouter()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	root.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.ready != nil && !d.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	root.Handle("/metrics", d.metrics.Handler())

	api := root.PathPrefix("/api").Subrouter()
	api.Use(httpx.Session(d.cookieSecure), httpx.Observe(d.log, d.metrics))
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, httpx.NewError(http.StatusNotFound, httpx.CodeNotFound, "no such route"))
	})

	cataloghttp.NewHandler(d.catalog).Register(api)
	carthttp.NewHandler(d.cart).Register(api)
	checkouthttp.NewHandler(d.checkout).Register(api)

	return root
}
