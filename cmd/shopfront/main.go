package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/events"
	"shopfront/internal/http/handlers"
	"shopfront/internal/http/web"
	"shopfront/internal/kv"
	applog "shopfront/internal/log"
	"shopfront/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := applog.TeeFile(cfg.LogFile)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
		}
	}

	st, err := kv.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	reg := metrics.NewRegistry()
	bus := events.NewBus()
	deps := handlers.NewDeps(st, catalog.New(cfg.CatalogURL, cfg.CatalogTimeout), bus, reg)
	if err := deps.Cart.Reload(context.Background()); err != nil {
		log.Printf("[warn] starting with an empty cart: %v", err)
	}

	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())

	deps.LoginGuard = limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})
	deps.Mount(app)

	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Printf("[shutdown] draining")
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[error] listen: %v", err)
	}
}
