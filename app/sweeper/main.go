package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/mazad/goapi/base/config"
	bCtx "github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/database/redisclient"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/base/metrics"
	mmiddleware "github.com/mazad/goapi/middleware"
	"github.com/mazad/goapi/service/cache"
	"github.com/mazad/goapi/service/cache/provider/primitive"
	"github.com/mazad/goapi/service/query"
	"github.com/mazad/goapi/service/redis"
	auditRepo "github.com/mazad/goapi/stores/audit/repository"
	bidRepo "github.com/mazad/goapi/stores/bid/repository"
	categoryRepo "github.com/mazad/goapi/stores/category/repository"
	categoryUseCase "github.com/mazad/goapi/stores/category/usecase"
	hcDelivery "github.com/mazad/goapi/stores/healthcheck/delivery/http"
	hcRepo "github.com/mazad/goapi/stores/healthcheck/repository"
	hcUseCase "github.com/mazad/goapi/stores/healthcheck/usecase"
	listingRepo "github.com/mazad/goapi/stores/listing/repository"
	listingUseCase "github.com/mazad/goapi/stores/listing/usecase"
	sweeperUseCase "github.com/mazad/goapi/stores/sweeper/usecase"
)

func init() {
	config.MustLoad(os.Args[1:])
	if err := log.Init(config.Log()); err != nil {
		panic(err)
	}
}

func main() {
	defer log.Sync()

	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	mongoClient := initMongo()
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	redisCache := initRedis()

	// start server to pass the platform health check
	startEchoServer(mongoClient, redisCache)

	lRepo := listingRepo.NewListingRepo(q)
	aRepo := auditRepo.NewAuditRepo(q)
	category := categoryUseCase.New(&categoryUseCase.CategoryUseCaseCfg{
		Q:         q,
		Repo:      categoryRepo.NewCategoryRepo(q),
		AuditRepo: aRepo,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("category.cacheTtl"),
			Pfx:   "category",
			Cache: primitive.NewPrimitive("category", viper.GetInt("category.cacheSizeMb")),
		}),
	})
	listing := listingUseCase.New(&listingUseCase.ListingUseCaseCfg{
		Q:             q,
		ListingRepo:   lRepo,
		WatchlistRepo: listingRepo.NewWatchlistRepo(q),
		BidRepo:       bidRepo.NewBidRepo(q),
		AuditRepo:     aRepo,
		Category:      category,
		RetryBackoff:  viper.GetDuration("bid.retryBackoff"),
	})

	sweeper := sweeperUseCase.New(&sweeperUseCase.SweeperCfg{
		ListingRepo: lRepo,
		ListingUC:   listing,
		Redis:       redisCache,
		Interval:    viper.GetDuration("sweeper.interval"),
		LockTtl:     viper.GetDuration("sweeper.lockTtl"),
		BatchSize:   viper.GetInt("sweeper.batchSize"),
		Workers:     viper.GetInt("sweeper.workers"),
	})
	sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	ctx.WithField("signal", sig).Info("received signal")

	cancel()
	sweeper.Wait()
	ctx.Info("sweeper stopped")
}

func initMongo() *mongoclient.Client {
	return mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:               viper.GetString("mongo.uri"),
		AuthDBName:        viper.GetString("mongo.authDBName"),
		DBName:            viper.GetString("mongo.dbName"),
		SSL:               viper.GetBool("mongo.enableSSL"),
		PoolMultiplier:    1,
		RequireReplicaSet: true,
	})
}

func initRedis() redis.Service {
	name := viper.GetString("redis_cache.name")
	pool := redisclient.MustConnectRedis(redisclient.Config{
		URI:            viper.GetString("redis_cache.uri"),
		Password:       viper.GetString("redis_cache.password"),
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	return redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
}

func startEchoServer(mongoClient *mongoclient.Client, redisCache redis.Service) {
	context := bCtx.Background()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	hcDelivery.New(e, hcUseCase.New(hcRepo.New(mongoClient, redisCache)))

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.WithField("err", err).Error("shutting down the server")
		}
	}()
}
