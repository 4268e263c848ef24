package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/mazad/goapi/base/config"
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/database/redisclient"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/base/metrics"
	bValidator "github.com/mazad/goapi/base/validator"
	mmiddleware "github.com/mazad/goapi/middleware"
	"github.com/mazad/goapi/service/cache"
	"github.com/mazad/goapi/service/cache/provider/compound"
	"github.com/mazad/goapi/service/cache/provider/primitive"
	redisProvider "github.com/mazad/goapi/service/cache/provider/redis"
	"github.com/mazad/goapi/service/query"
	"github.com/mazad/goapi/service/redis"
	audit_delivery "github.com/mazad/goapi/stores/audit/delivery/http"
	audit_repository "github.com/mazad/goapi/stores/audit/repository"
	audit_usecase "github.com/mazad/goapi/stores/audit/usecase"
	auth_delivery "github.com/mazad/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/mazad/goapi/stores/auth/usecase"
	bid_delivery "github.com/mazad/goapi/stores/bid/delivery/http"
	bid_repository "github.com/mazad/goapi/stores/bid/repository"
	bid_usecase "github.com/mazad/goapi/stores/bid/usecase"
	category_delivery "github.com/mazad/goapi/stores/category/delivery/http"
	category_repository "github.com/mazad/goapi/stores/category/repository"
	category_usecase "github.com/mazad/goapi/stores/category/usecase"
	hc_delivery "github.com/mazad/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/mazad/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/mazad/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/mazad/goapi/stores/listing/delivery/http"
	listing_repository "github.com/mazad/goapi/stores/listing/repository"
	listing_usecase "github.com/mazad/goapi/stores/listing/usecase"
	moderation_delivery "github.com/mazad/goapi/stores/moderation/delivery/http"
	moderation_usecase "github.com/mazad/goapi/stores/moderation/usecase"
	order_delivery "github.com/mazad/goapi/stores/order/delivery/http"
	order_repository "github.com/mazad/goapi/stores/order/repository"
	order_usecase "github.com/mazad/goapi/stores/order/usecase"
)

func init() {
	config.MustLoad(os.Args[1:])
	if err := log.Init(config.Log()); err != nil {
		panic(err)
	}
}

func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:               viper.GetString("mongo.uri"),
		AuthDBName:        viper.GetString("mongo.authDBName"),
		DBName:            viper.GetString("mongo.dbName"),
		SSL:               viper.GetBool("mongo.enableSSL"),
		PoolMultiplier:    2,
		RequireReplicaSet: true,
	})
	if viper.GetBool("mongo.ensureIndexes") {
		if err := mongoclient.EnsureIndexes(context, mongoClient, mongoclient.Indexes); err != nil {
			context.WithField("err", err).Panic("mongoclient.EnsureIndexes failed")
		}
	}
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCachePool := redisclient.MustConnectRedis(redisclient.Config{
		URI:            viper.GetString("redis_cache.uri"),
		Password:       viper.GetString("redis_cache.password"),
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	// categories are read on every listing write, keep them in process first
	categoryCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("category.cacheTtl"),
		Pfx: "category",
		Cache: compound.NewCompound(
			primitive.NewPrimitive("category", viper.GetInt("category.cacheSizeMb")),
			redisProvider.NewRedis(redisCache),
		),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q)
	watchlistRepo := listing_repository.NewWatchlistRepo(q)
	bidRepo := bid_repository.NewBidRepo(q)
	orderRepo := order_repository.NewOrderRepo(q)
	auditRepo := audit_repository.NewAuditRepo(q)
	categoryRepo := category_repository.NewCategoryRepo(q)

	retryBackoff := viper.GetDuration("bid.retryBackoff")

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTtl"), viper.GetStringSlice("admin.ids"))
	audit := audit_usecase.New(auditRepo)
	category := category_usecase.New(&category_usecase.CategoryUseCaseCfg{
		Q:         q,
		Repo:      categoryRepo,
		AuditRepo: auditRepo,
		Cache:     categoryCache,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Q:             q,
		ListingRepo:   listingRepo,
		WatchlistRepo: watchlistRepo,
		BidRepo:       bidRepo,
		AuditRepo:     auditRepo,
		Category:      category,
		RetryBackoff:  retryBackoff,
	})
	bid := bid_usecase.New(&bid_usecase.BidUseCaseCfg{
		Q:            q,
		ListingRepo:  listingRepo,
		BidRepo:      bidRepo,
		RetryBackoff: retryBackoff,
	})
	order := order_usecase.New(&order_usecase.OrderUseCaseCfg{
		OrderRepo: orderRepo,
		ListingUC: listing,
	})
	moderation := moderation_usecase.New(&moderation_usecase.ModerationUseCaseCfg{
		ListingRepo: listingRepo,
		ListingUC:   listing,
	})

	auth_middleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth_middleware)
	category_delivery.New(e, category, auth_middleware)
	listing_delivery.New(e, listing, auth_middleware)
	bid_delivery.New(e, bid, auth_middleware)
	order_delivery.New(e, order, auth_middleware)
	moderation_delivery.New(e, moderation, auth_middleware)
	audit_delivery.New(e, audit, auth_middleware)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
