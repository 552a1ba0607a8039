package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hourly-quote/internal/config"
	"hourly-quote/internal/db"
	"hourly-quote/internal/httpserver"
	cartrepo "hourly-quote/internal/repository/cart"
	productrepo "hourly-quote/internal/repository/product"
	schemarepo "hourly-quote/internal/repository/schema"
	cartsvc "hourly-quote/internal/service/cart"
	catalogsvc "hourly-quote/internal/service/catalog"
	"hourly-quote/internal/service/pricing"
	quotesvc "hourly-quote/internal/service/quote"
	schemasvc "hourly-quote/internal/service/schema"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	schemaRepo := schemarepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo)
	schemaService := schemasvc.New(schemaRepo)
	quoteService := quotesvc.New(productRepo, cartRepo, schemaService, logger)
	reconciler := pricing.NewReconciler(cartRepo, productRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:          catalogService,
		CartSvc:             cartService,
		SchemaSvc:           schemaService,
		QuoteSvc:            quoteService,
		Reconciler:          reconciler,
		CheckoutRedirectURL: cfg.CheckoutRedirectURL,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
