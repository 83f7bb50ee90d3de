package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"streamhub-backend/internal/config"
	"streamhub-backend/internal/domains/artwork"
	artworkHandler "streamhub-backend/internal/domains/artwork/handler"
	artworkService "streamhub-backend/internal/domains/artwork/service"
	"streamhub-backend/internal/domains/catalog"
	catalogHandler "streamhub-backend/internal/domains/catalog/handler"
	catalogRepo "streamhub-backend/internal/domains/catalog/repository"
	catalogService "streamhub-backend/internal/domains/catalog/service"
	"streamhub-backend/internal/domains/notification"
	notificationHandler "streamhub-backend/internal/domains/notification/handler"
	notificationRepo "streamhub-backend/internal/domains/notification/repository"
	notificationService "streamhub-backend/internal/domains/notification/service"
	"streamhub-backend/internal/domains/user"
	userHandler "streamhub-backend/internal/domains/user/handler"
	userRepo "streamhub-backend/internal/domains/user/repository"
	userService "streamhub-backend/internal/domains/user/service"
	infraCache "streamhub-backend/internal/infrastructure/cache"
	"streamhub-backend/internal/infrastructure/database"
	"streamhub-backend/internal/infrastructure/queue"
	"streamhub-backend/internal/infrastructure/storage"
	"streamhub-backend/internal/shared/access"
	"streamhub-backend/pkg/cache"
	pkgdb "streamhub-backend/pkg/database"
	"streamhub-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Thứ tự build: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil khi chạy với in-memory stores
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Boundary    *pkgdb.Boundary
	AsynqClient *asynq.Client
	Storage     artwork.ObjectStorage
	Images      *storage.ImageProcessor
	Queue       artwork.Enqueuer

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo         user.Repository
	CatalogStore     catalog.Store
	NotificationRepo notification.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService      *userService.UserService
	SessionService   *userService.SessionService
	LifecycleService *catalogService.LifecycleService
	FeedService      *notificationService.FeedService
	ArtworkService   *artworkService.ArtworkService

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthHandler         *userHandler.AuthHandler
	UserHandler         *userHandler.UserHandler
	SeriesHandler       *catalogHandler.SeriesHandler
	EpisodeHandler      *catalogHandler.EpisodeHandler
	NotificationHandler *notificationHandler.NotificationHandler
	ArtworkHandler      *artworkHandler.ArtworkHandler
}

// Stores gom các backend mà container cần khi không tự kết nối (tests, tooling)
type Stores struct {
	Users         user.Repository
	Catalog       catalog.Store
	Notifications notification.Repository
	Cache         cache.Cache
	Storage       artwork.ObjectStorage
	Queue         artwork.Enqueuer
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer load config, kết nối PostgreSQL, Redis, MinIO rồi build toàn bộ graph
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("✅ Config loaded (Environment: %s, catalog read mode: %s)", cfg.App.Environment, cfg.Catalog.ReadMode)

	c := &Container{Config: cfg}

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	if cfg.Database.AutoMigrate {
		log.Println("📜 Running migrations (DB_AUTO_MIGRATE=true)...")
		if err := database.MigratePool(ctx, db.Pool); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("✅ Migrations applied")
	}

	// ========================================
	// STEP 3: INITIALIZE REDIS (sessions + queue)
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.AsynqClient = queue.NewClient(cfg.Redis)
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORAGE
	// ========================================
	log.Println("🪣 Connecting to MinIO...")

	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init minio: %w", err)
	}
	log.Printf("✅ MinIO ready (bucket: %s)", cfg.MinIO.Bucket)

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	pool := db.Pool
	c.build(Stores{
		Users:         userRepo.NewPostgresRepository(pool),
		Catalog:       catalogRepo.NewPostgresStore(pool),
		Notifications: notificationRepo.NewPostgresRepository(pool),
		Cache:         infraCache.NewRedisCache(c.Redis.Client),
		Storage:       minioStorage,
		Queue:         c.AsynqClient,
	})

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// NewWithStores build container trên các store có sẵn, không kết nối gì
func NewWithStores(cfg *config.Config, stores Stores) *Container {
	c := &Container{Config: cfg}
	c.build(stores)
	return c
}

func (c *Container) build(stores Stores) {
	cfg := c.Config

	c.Cache = stores.Cache
	c.Storage = stores.Storage
	c.Queue = stores.Queue
	c.JWTManager = jwt.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	c.Boundary = pkgdb.NewBoundary(cfg.Database.StoreTimeout)
	c.Images = storage.NewImageProcessor(cfg.MinIO.ArtworkMaxBytes)

	log.Println("📦 Initializing repositories...")
	c.UserRepo = stores.Users
	c.CatalogStore = stores.Catalog
	c.NotificationRepo = stores.Notifications

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initServices() {
	// ----------------------------------------
	// USER + SESSION
	// ----------------------------------------
	c.UserService = userService.NewUserService(c.UserRepo, c.Boundary, userService.DefaultHashCost)
	c.SessionService = userService.NewSessionService(c.UserRepo, c.Cache, c.JWTManager, c.Boundary)

	// ----------------------------------------
	// CATALOG
	// ----------------------------------------
	// UserRepo đóng vai ActorDirectory (updatedBy phải tồn tại)
	c.LifecycleService = catalogService.NewLifecycleService(
		c.CatalogStore,
		c.UserRepo,
		access.NewReadPolicy(c.Config.Catalog.ReadMode),
		c.Boundary,
	)

	// ----------------------------------------
	// NOTIFICATION
	// ----------------------------------------
	c.FeedService = notificationService.NewFeedService(c.NotificationRepo, c.Boundary)

	// ----------------------------------------
	// ARTWORK
	// ----------------------------------------
	c.ArtworkService = artworkService.NewArtworkService(c.Storage, c.Queue, c.Images)
}

func (c *Container) initHandlers() {
	cookie := userHandler.CookieConfig{
		Name:   c.Config.Session.CookieName,
		Secure: c.Config.Session.Secure,
	}

	c.AuthHandler = userHandler.NewAuthHandler(c.UserService, c.SessionService, cookie)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.SeriesHandler = catalogHandler.NewSeriesHandler(c.LifecycleService)
	c.EpisodeHandler = catalogHandler.NewEpisodeHandler(c.LifecycleService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.FeedService)
	c.ArtworkHandler = artworkHandler.NewArtworkHandler(c.ArtworkService, c.Config.MinIO.ArtworkMaxBytes)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
