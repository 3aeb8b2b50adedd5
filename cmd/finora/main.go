package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/finora/internal/api"
	"github.com/terraincognita07/finora/internal/cli"
	"github.com/terraincognita07/finora/internal/config"
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/lock"
)

const redisLockPrefix = "finora:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	location := cfg.Location()
	time.Local = location

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if len(os.Args) > 1 {
		if err := runCommand(ctx, cfg, os.Args[1], os.Args[2:], os.Stdout); err != nil {
			stopSignals()
			log.Fatalf("%s: %v", os.Args[1], err)
		}
		return
	}

	if err := serve(ctx, cfg, location); err != nil {
		stopSignals()
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(ctx context.Context, cfg *config.Config, name string, args []string, out io.Writer) error {
	switch name {
	case "reset-password":
		flags := flag.NewFlagSet(name, flag.ContinueOnError)
		email := flags.String("email", "", "account email")
		prompt := flags.Bool("prompt", false, "read the temporary password from stdin instead of generating one")
		if err := flags.Parse(args); err != nil {
			return err
		}
		source := cli.PasswordSource(cli.GeneratedPassword)
		if *prompt {
			source = cli.PromptPassword(os.Stdin, out)
		}
		return cli.RunResetPasswordCommand(ctx, cfg.DBPath, *email, source, out)
	case "reconcile":
		flags := flag.NewFlagSet(name, flag.ContinueOnError)
		email := flags.String("email", "", "account email")
		if err := flags.Parse(args); err != nil {
			return err
		}
		locker, closeLocker, err := newLocker(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeLocker()
		_, err = cli.RunReconcileCommand(ctx, cfg.DBPath, *email, locker, cfg.Location(), out)
		return err
	default:
		return fmt.Errorf("unknown command %q (expected reset-password or reconcile)", name)
	}
}

// newLocker uses Redis when REDIS_ADDR is set so reconciliation stays
// exclusive per user across replicas; otherwise locks are process-local.
func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewMemory(), func() {}, nil
	}
	client, err := lock.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("redis init failed: %w", err)
	}
	return lock.NewRedis(client, redisLockPrefix, cfg.ReconcileLockTTL), func() { _ = client.Close() }, nil
}

func serve(ctx context.Context, cfg *config.Config, location *time.Location) error {
	database, err := db.Open(db.Options{Path: cfg.DBPath, LogLevel: cfg.DBLogLevel})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:       cfg.SecretKey,
		Location:        location,
		CookieSecure:    cfg.CookieSecure,
		DefaultCurrency: cfg.DefaultCurrency,
		Locker:          locker,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp()
	api.RegisterRoutes(app, handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Finora listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Finora",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	return app
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("api: unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
