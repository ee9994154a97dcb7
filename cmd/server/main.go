package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/marketsquare/storefront/internal/config"
	"github.com/marketsquare/storefront/internal/es"
	"github.com/marketsquare/storefront/internal/events"
	"github.com/marketsquare/storefront/internal/httpserver"
	"github.com/marketsquare/storefront/internal/idp"
	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/middleware/loggingmw"
	"github.com/marketsquare/storefront/internal/repo"
	"github.com/marketsquare/storefront/internal/search"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/webhook"
	"github.com/marketsquare/storefront/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	database, err := db.Open(ctx, configuration.DATABASE_URL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := repo.AutoMigrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	r := repo.New(database)

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(configuration.KAFKA_ADDRESS)
		publisher = producer
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	var index *search.Index
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		index = search.NewIndex(esClient, configuration.ES_INDEX)
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	var verifier *webhook.Verifier
	if configuration.WEBHOOK_SECRET != "" {
		verifier, err = webhook.NewVerifier(configuration.WEBHOOK_SECRET)
		if err != nil {
			log.Fatalf("webhook secret invalid: %v", err)
		}
	}

	var roleMirror service.RoleMirror
	if configuration.IDP_URL != "" && configuration.IDP_API_KEY != "" {
		roleMirror = idp.NewClient(configuration.IDP_URL, configuration.IDP_API_KEY)
	}

	couponSvc := &service.CouponService{Repo: r, Events: publisher}
	cartSvc := &service.CartService{Repo: r, Events: publisher}
	checkoutSvc := &service.CheckoutService{Repo: r, Events: publisher}
	catalogSvc := &service.CatalogService{Repo: r, Events: publisher, Index: index}
	storeSvc := &service.StoreService{Repo: r}
	categorySvc := &service.CategoryService{Repo: r}
	userSvc := &service.UserService{Repo: r, Events: publisher, IdP: roleMirror}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Repo:      r,
		JWTSecret: []byte(configuration.JWT_SECRET),
		Coupons:   &httpserver.CouponHTTP{Svc: couponSvc, Carts: cartSvc},
		Carts:     &httpserver.CartHTTP{Svc: cartSvc},
		Checkout:  &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		Products:  &httpserver.ProductHTTP{Svc: catalogSvc},
		Stores:    &httpserver.StoreHTTP{Svc: storeSvc},
		Category:  &httpserver.CategoryHTTP{Svc: categorySvc},
		Profile:   &httpserver.ProfileHTTP{Svc: userSvc},
		Webhooks:  &httpserver.WebhookHTTP{Verifier: verifier, Users: userSvc},
	}
	if index != nil {
		deps.Search = &httpserver.SearchHTTP{Index: index}
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", configuration.HTTP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := db.Close(database); err != nil {
		logger.Error("db close error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
