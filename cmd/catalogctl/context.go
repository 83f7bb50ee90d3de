package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"streamhub-backend/internal/config"
	"streamhub-backend/internal/domains/catalog"
	catalogRepo "streamhub-backend/internal/domains/catalog/repository"
	catalogService "streamhub-backend/internal/domains/catalog/service"
	"streamhub-backend/internal/domains/user"
	userRepo "streamhub-backend/internal/domains/user/repository"
	userService "streamhub-backend/internal/domains/user/service"
	"streamhub-backend/internal/infrastructure/database"
	"streamhub-backend/internal/shared/access"
	pkgdb "streamhub-backend/pkg/database"
)

var errNoDatabase = errors.New("this command needs a PostgreSQL connection")

// stores is what a command runs against
type stores struct {
	Users   user.Repository
	Catalog catalog.Store
	Pool    *pgxpool.Pool // nil when running on in-memory stores
}

// commandContext holds lazily opened resources shared by subcommands
type commandContext struct {
	loadConfig func() (*config.Config, error)
	openStores func(ctx context.Context) (*stores, func(), error)
	hashCost   int

	cfg *config.Config
}

func newCommandContext() *commandContext {
	return &commandContext{
		loadConfig: config.Load,
		openStores: openPostgresStores,
		hashCost:   userService.DefaultHashCost,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// services builds the user and catalog services over the opened stores
func (c *commandContext) services(s *stores) (*userService.UserService, *catalogService.LifecycleService) {
	boundary := pkgdb.NewBoundary(c.cfg.Database.StoreTimeout)

	users := userService.NewUserService(s.Users, boundary, c.hashCost)
	lifecycle := catalogService.NewLifecycleService(
		s.Catalog,
		s.Users,
		access.NewReadPolicy(c.cfg.Catalog.ReadMode),
		boundary,
	)
	return users, lifecycle
}

func openPostgresStores(ctx context.Context) (*stores, func(), error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	return &stores{
		Users:   userRepo.NewPostgresRepository(db.Pool),
		Catalog: catalogRepo.NewPostgresStore(db.Pool),
		Pool:    db.Pool,
	}, db.Close, nil
}
