package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-stockbot/config"
	"github.com/fekuna/omnipos-stockbot/internal/bot"
	"github.com/fekuna/omnipos-stockbot/internal/cache"
	"github.com/fekuna/omnipos-stockbot/internal/database"
	"github.com/fekuna/omnipos-stockbot/internal/i18n"
	"github.com/fekuna/omnipos-stockbot/internal/inventory"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"github.com/fekuna/omnipos-stockbot/internal/server"

	catRepoPkg "github.com/fekuna/omnipos-stockbot/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-stockbot/internal/category/usecase"

	invListenerPkg "github.com/fekuna/omnipos-stockbot/internal/inventory/listener"
	invNotifierPkg "github.com/fekuna/omnipos-stockbot/internal/inventory/notifier"
	invReportPkg "github.com/fekuna/omnipos-stockbot/internal/inventory/report"
	invUCPkg "github.com/fekuna/omnipos-stockbot/internal/inventory/usecase"

	prodRepoPkg "github.com/fekuna/omnipos-stockbot/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-stockbot/internal/product/usecase"

	subRepoPkg "github.com/fekuna/omnipos-stockbot/internal/subscriber/repository"
	subUCPkg "github.com/fekuna/omnipos-stockbot/internal/subscriber/usecase"

	taskRepoPkg "github.com/fekuna/omnipos-stockbot/internal/task/repository"
	taskUCPkg "github.com/fekuna/omnipos-stockbot/internal/task/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := database.Open(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not open database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewSQLRepository(db)
	prodRepo := prodRepoPkg.NewSQLRepository(db)
	subRepo := subRepoPkg.NewSQLRepository(db)
	taskRepo := taskRepoPkg.NewSQLRepository(db)

	// 5. Messages and Telegram client
	msg, err := i18n.New(cfg.Telegram.Locale)
	if err != nil {
		appLogger.Fatal("Could not load messages", zap.Error(err))
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		appLogger.Fatal("Could not connect to Telegram", zap.Error(err))
	}
	api.Debug = cfg.Telegram.Debug
	appLogger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	// 6. Per-product lock: Redis when configured, in-process otherwise
	var locker inventory.Locker = cache.NewLocalLocker()
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, &cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 7. Initialize UseCases
	notifier := invNotifierPkg.New(prodRepo, catRepo, subRepo, bot.NewSender(api), msg, appLogger)
	aggregator := invReportPkg.NewAggregator(prodRepo, msg)

	lockOpts := invUCPkg.DefaultLockOptions
	if cfg.Redis.LockTTL > 0 {
		lockOpts.TTL = cfg.Redis.LockTTL
	}

	uc := bot.UseCases{
		Categories:  catUCPkg.NewCategoryUseCase(catRepo, appLogger),
		Products:    prodUCPkg.NewProductUseCase(prodRepo, appLogger),
		Inventory:   invUCPkg.NewInventoryUseCase(prodRepo, notifier, aggregator, locker, lockOpts, appLogger),
		Subscribers: subUCPkg.NewSubscriberUseCase(subRepo, appLogger),
		Tasks:       taskUCPkg.NewTaskUseCase(taskRepo, appLogger),
	}

	// 8. Kafka stock listener
	if len(cfg.Kafka.Brokers) > 0 {
		reader := invListenerPkg.NewKafkaReader(&invListenerPkg.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		go invListenerPkg.NewStockListener(reader, uc.Inventory, appLogger).Start(ctx)
		appLogger.Info("Listening for stock events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 9. Start gRPC health server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("Failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := server.New(appLogger)
	go grpcServer.WatchHealth(ctx, db, 15*time.Second)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server stopped", zap.Error(err))
		}
	}()

	// 10. Run the bot until a signal arrives
	bot.New(api, uc, msg, cfg.Telegram.PollTimeout, appLogger).Run(ctx)

	appLogger.Info("Shutting down...")
	grpcServer.GracefulStop()
	appLogger.Info("Stopped")
}
