package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"recipe-admin-backend/internal/config"
	infraCache "recipe-admin-backend/internal/infrastructure/cache"
	"recipe-admin-backend/internal/infrastructure/database"
	"recipe-admin-backend/internal/infrastructure/storage"
	"recipe-admin-backend/internal/infrastructure/vault"
	"recipe-admin-backend/pkg/cache"

	"github.com/hibiken/asynq"

	// Recipe domain
	recipeHandler "recipe-admin-backend/internal/domains/recipe/handler"
	recipeModel "recipe-admin-backend/internal/domains/recipe/model"
	recipeRepo "recipe-admin-backend/internal/domains/recipe/repository"
	recipeService "recipe-admin-backend/internal/domains/recipe/service"

	// Article domain
	articleHandler "recipe-admin-backend/internal/domains/article/handler"
	articleRepo "recipe-admin-backend/internal/domains/article/repository"
	articleService "recipe-admin-backend/internal/domains/article/service"

	// System status
	statusHandler "recipe-admin-backend/internal/domains/system/handler"
	statusService "recipe-admin-backend/internal/domains/system/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của api và worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	Vault          *vault.VaultStore
	Storage        *storage.MinIOStorage // nil khi object storage chưa cấu hình
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	RecipeRepo     recipeRepo.RecipeRepository
	EnrichmentRepo recipeRepo.EnrichmentRepository
	ArticleRepo    articleRepo.ArticleRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	RecipeService      *recipeService.RecipeService
	ImageRecipeService recipeService.ImageService
	ArticleService     articleService.ServiceInterface
	StatusService      *statusService.StatusService

	// ========================================
	// HANDLER LAYER
	// ========================================
	RecipeHandler  *recipeHandler.RecipeHandler
	ArticleHandler *articleHandler.ArticleHandler
	StatusHandler  *statusHandler.StatusHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo dependency graph theo thứ tự:
// config -> database -> vault -> cache -> storage -> queue -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

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
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: SUPABASE VAULT
	// ========================================
	c.Vault = vault.NewVaultStore(db.Pool)
	if err := c.resolveSecrets(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 4: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			// Redis failure không critical - log warning và continue
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// ========================================
	// STEP 5: OBJECT STORAGE
	// ========================================
	c.initStorage(ctx)

	// ========================================
	// STEP 6: TASK QUEUE CLIENT
	// ========================================
	c.AsynqClient = asynq.NewClient(c.RedisOpt())

	// ========================================
	// STEP 7: REPOSITORIES / SERVICES / HANDLERS
	// ========================================
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	c.initServices()
	log.Println("✅ Services initialized")

	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// RedisOpt dùng chung cho asynq client, server và scheduler
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// resolveSecrets lấy MinIO secret key từ Vault khi env không set
func (c *Container) resolveSecrets(ctx context.Context) error {
	cfg := c.Config
	if cfg.MinIO.SecretKey != "" || !cfg.Vault.Enabled {
		return nil
	}

	log.Printf("🔐 Resolving %s from Supabase Vault...", cfg.Vault.MinIOSecretName)
	secret, err := c.Vault.GetSecret(ctx, cfg.Vault.MinIOSecretName)
	if err != nil {
		if cfg.IsProduction() {
			return fmt.Errorf("failed to resolve storage secret: %w", err)
		}
		log.Printf("⚠️  Vault secret unavailable (non-critical): %v", err)
		return nil
	}
	cfg.MinIO.SecretKey = secret
	return nil
}

func (c *Container) initStorage(ctx context.Context) {
	c.ImageProcessor = storage.NewImageProcessor(recipeModel.MaxImageSizeBytes)

	if c.Config.MinIO.Endpoint == "" || c.Config.MinIO.SecretKey == "" {
		log.Println("⚠️  Object storage not configured, image upload disabled")
		return
	}

	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		log.Printf("⚠️  Object storage init failed (non-critical): %v", err)
		return
	}
	if err := minioStorage.EnsureBucket(ctx); err != nil {
		log.Printf("⚠️  Bucket check failed (non-critical): %v", err)
	}
	c.Storage = minioStorage
	log.Printf("✅ Object storage ready (bucket: %s)", minioStorage.Bucket())
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.RecipeRepo = recipeRepo.NewPostgresRepository(pool)
	c.EnrichmentRepo = recipeRepo.NewEnrichmentRepository(pool)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.RecipeService = recipeService.NewService(c.RecipeRepo, c.EnrichmentRepo, c.Cache, c.AsynqClient)

	// Interface nil thật sự, không phải (*MinIOStorage)(nil)
	var objectStorage recipeService.ObjectStorage
	if c.Storage != nil {
		objectStorage = c.Storage
	}
	c.ImageRecipeService = recipeService.NewImageService(
		c.RecipeRepo,
		objectStorage,
		c.ImageProcessor,
		c.AsynqClient,
		c.Cache,
	)

	c.ArticleService = articleService.NewService(c.ArticleRepo)

	c.StatusService = statusService.NewStatusService(
		statusService.DefaultCheckTimeout,
		statusService.NewChecker(statusService.ComponentCache, c.checkCache),
		statusService.NewChecker(statusService.ComponentStorage, c.storageCheck()),
		statusService.NewChecker(statusService.ComponentVault, c.checkVault),
	)
}

func (c *Container) initHandlers() {
	c.RecipeHandler = recipeHandler.NewRecipeHandler(c.RecipeService, c.ImageRecipeService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.StatusHandler = statusHandler.NewStatusHandler(c.StatusService)
}

// ========================================
// STATUS CHECKS
// ========================================

func (c *Container) checkCache(ctx context.Context) (map[string]interface{}, error) {
	if err := c.Cache.Ping(ctx); err != nil {
		return nil, err
	}
	return map[string]interface{}{"addr": c.Config.Redis.Host}, nil
}

// storageCheck trả nil khi chưa cấu hình: checker báo "not configured"
func (c *Container) storageCheck() func(ctx context.Context) (map[string]interface{}, error) {
	if c.Storage == nil {
		return nil
	}
	return func(ctx context.Context) (map[string]interface{}, error) {
		if err := c.Storage.HealthCheck(ctx); err != nil {
			return nil, err
		}
		return map[string]interface{}{"bucket": c.Storage.Bucket()}, nil
	}
}

func (c *Container) checkVault(ctx context.Context) (map[string]interface{}, error) {
	count, err := c.Vault.Count(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"secrets": count,
		"enabled": c.Config.Vault.Enabled,
	}, nil
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("⚠️  Failed to close database: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
