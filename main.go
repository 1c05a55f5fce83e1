package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ecoally/ecolens/internal/config"
	"github.com/ecoally/ecolens/internal/geo"
	"github.com/ecoally/ecolens/internal/handlers"
	"github.com/ecoally/ecolens/internal/imaging"
	"github.com/ecoally/ecolens/internal/inference"
	"github.com/ecoally/ecolens/internal/logging"
	"github.com/ecoally/ecolens/internal/species"
	"github.com/ecoally/ecolens/internal/usecase"
)

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	fetcher := imaging.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes)
	model := inference.NewClient(cfg.Model.ServerURL, cfg.Model.Timeout, logger)

	features := usecase.Features{}

	var cache species.Cache = species.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		cache = species.NewRedisCache(initRedis(redisCtx, cfg.Redis.Addr, logger), logger)
		redisCancel()
		features.Redis = true
	}

	var lookup species.Lookup
	if cfg.PlantNet.APIKey != "" {
		lookup = species.NewPlantNetClient(cfg.PlantNet.APIKey, cfg.PlantNet.URL, logger)
		features.PlantNet = true
	} else {
		logger.Warn("plantnet api key not set, species identification uses colour heuristic only")
	}
	identifier := species.NewIdentifier(lookup, cache, logger)

	primary := geo.NewBigDataCloudClient(cfg.Geo.BigDataCloudURL)
	var secondary geo.Geocoder
	if cfg.Geo.OpenCageKey != "" {
		secondary = geo.NewOpenCageClient(cfg.Geo.OpenCageKey, cfg.Geo.OpenCageURL)
		features.OpenCage = true
	}
	resolver := geo.NewResolver(primary, secondary, logger)

	uc := usecase.NewAnalysisUseCase(fetcher, model, identifier, resolver, features, logger)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"*"},
	}))

	handlers.RegisterRoutes(r, uc, logger)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	logger.Info("EcoLens analysis service listening", zap.String("addr", cfg.Server.Addr))
	if err := serveHTTPServer(server, 15*time.Second, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func initRedis(ctx context.Context, addr string, zapLogger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
