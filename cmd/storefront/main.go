package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartmem "github.com/dwikikusuma/storefront/internal/cart/infra/memory"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmem "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"

	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/payment"

	orderapp "github.com/dwikikusuma/storefront/internal/order/app"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	// Catalog
	catalogSvc := catalogapp.NewService(catalogmem.NewSeededProductRepo())

	// Cart
	cartRepo := cartmem.NewCartRepo(cfg.CartSessionTTL)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc), cartapp.WithRecorder(m))

	// Checkout (adapters)
	gateway := payment.NewBreaker(payment.NewSimulated(cfg.CheckoutDelay), breakerSettings(cfg), log)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		gateway,
		orderapp.NewService(),
		cfg.CheckoutMaxConcurrent,
		checkoutapp.WithLogger(log),
		checkoutapp.WithRecorder(m),
	)

	var ready atomic.Bool
	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: newRouter(routerDeps{
			log:          log,
			metrics:      m,
			ready:        &ready,
			cookieSecure: cfg.CookieSecure,
			catalog:      catalogSvc,
			cart:         cartSvc,
			checkout:     checkoutSvc,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.PaymentTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", server.Addr))
		ready.Store(true)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.CartSessionTTL > 0 {
		g.Go(func() error {
			return cartRepo.Run(gctx, sweepInterval)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		ready.Store(false)
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
			return err
		}
		return nil
	})

	return g.Wait()
}

func breakerSettings(cfg config.Config) payment.BreakerSettings {
	st := payment.DefaultBreakerSettings()
	st.Timeout = cfg.PaymentTimeout
	return st
}
