package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/ankalaev/animanga-shop/internal/cart/app"
	catalogapp "github.com/ankalaev/animanga-shop/internal/catalog/app"
	"github.com/ankalaev/animanga-shop/internal/catalog/infra/static"
	checkoutapp "github.com/ankalaev/animanga-shop/internal/checkout/app"
	checkoutadapter "github.com/ankalaev/animanga-shop/internal/checkout/infra/adapter"
	orderapp "github.com/ankalaev/animanga-shop/internal/order/app"
	"github.com/ankalaev/animanga-shop/internal/order/infra/kvrepo"
	"github.com/ankalaev/animanga-shop/internal/session"
	"github.com/ankalaev/animanga-shop/pkg/config"
	"github.com/ankalaev/animanga-shop/pkg/kv"
	"github.com/ankalaev/animanga-shop/pkg/logger"
	"github.com/ankalaev/animanga-shop/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "shop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Format:  "text",
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store := mustStore(cfg, log)

	// The admin flag lives in memory only so closing the session always
	// locks the console again.
	ephemeral := kv.NewMemoryStore()

	catalogSvc := catalogapp.NewService(static.NewProductRepo(), store)
	cartSvc := cartapp.NewService(ctx, store)
	orderSvc := orderapp.NewService(kvrepo.NewOrderRepo(store))
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewOrderServicePlacer(orderSvc),
	)
	sessions := session.NewManager(store, ephemeral)

	c := &console{
		cfg:      cfg,
		log:      log,
		catalog:  catalogSvc,
		cart:     cartSvc,
		orders:   orderSvc,
		checkout: checkoutSvc,
		sessions: sessions,
		out:      os.Stdout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Watch delivers writes made by other sessions; cart reloads
		// through its subscription.
		if err := store.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return c.run(gctx, os.Stdin)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("shop stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func mustStore(cfg config.Config, log *slog.Logger) kv.Store {
	switch strings.ToLower(cfg.StoreBackend) {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return kv.NewRedisStore(rdb, cfg.RedisPrefix)
	case "memory":
		return kv.NewMemoryStore()
	default:
		store, err := kv.NewFileStore(cfg.DataDir, cfg.PollInterval)
		if err != nil {
			log.Error("store open failed", slog.Any("err", err), slog.String("dir", cfg.DataDir))
			os.Exit(1)
		}
		return store
	}
}
