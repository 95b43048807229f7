package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/peoplemanager/identity"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	users := identity.NewUsersRepository(db)
	provider := identity.NewUserProvider(users)
	tokens := identity.NewTokenService(identity.JWTSettings{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiry,
	})
	service := identity.NewIdentityService(provider, tokens)

	if cfg.SeedUsername != "" && cfg.SeedPassword != "" {
		if err := seedUser(ctx, provider, cfg); err != nil {
			return err
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "people-manager-identity",
		DisableStartupMessage: true,
	})

	identity.RegisterRoutes(app, identity.NewIdentityController(service))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("identity api listening on %s", cfg.Addr)
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*identity.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func seedUser(ctx context.Context, provider *identity.UserProvider, cfg Config) error {
	_, err := provider.CreateIdentity(ctx, cfg.SeedUsername, cfg.SeedUsername, cfg.SeedPassword)
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateUsername) {
			return nil
		}
		return err
	}

	log.Printf("seeded user %s", cfg.SeedUsername)
	return nil
}
