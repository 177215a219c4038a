package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/in/http"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/cache"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/logger"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/memory"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/mongodb"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/rest"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/scheduling_service"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/shift_lifecycle_service"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/services/snapshot_service"
	"github.com/suchimauz/staff-roster-scheduler/internal/i18n"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewZapLogger(logger.Options{
		Timezone:    cfg.App.Timezone,
		Level:       cfg.App.LogLevel,
		Development: cfg.IsLocal(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()

	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"storeDriver":     cfg.Store.Driver,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"reassignPolicy":  cfg.Roster.ReassignPolicy,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация адаптеров
	storePort, closeStore, err := newStore(ctx, cfg, mainLogger)
	if err != nil {
		log.Error("app.store.init_failed", out.LogFields{
			"driver": cfg.Store.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer closeStore()

	var cachePort out.CachePort
	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger)
	if err != nil {
		log.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if cacheAdapter != nil {
		cachePort = cacheAdapter
	}

	translator, err := i18n.NewTranslator(cfg.App.Locale, mainLogger)
	if err != nil {
		log.Error("app.i18n.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Инициализация сервисов
	rosterService := services.NewRosterService(
		snapshot_service.NewSnapshotService(storePort, mainLogger),
		scheduling_service.NewSchedulingService(cachePort, translator, mainLogger),
		shift_lifecycle_service.NewShiftLifecycleService(storePort, mainLogger, shift_lifecycle_service.Options{
			ReassignPolicy: domain.ReassignPolicy(cfg.Roster.ReassignPolicy),
			Location:       cfg.Location(),
		}),
		mainLogger,
	)

	// Первый снапшот грузим сразу, ошибки отдельных ресурсов не мешают старту
	if _, err := rosterService.Reconcile(ctx); err != nil {
		log.Error("app.snapshot.initial_load_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Настройка HTTP сервера
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.IsLocal() {
		router.Use(gin.Logger())
	}
	http.NewRosterController(rosterService, cfg, mainLogger).RegisterRoutes(router)

	server := &nethttp.Server{
		Addr:              cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Настройка RabbitMQ слушателя только если он включен
	listener, err := rabbitmq.NewEventListener(rosterService, cfg, mainLogger)
	if err != nil {
		log.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if listener != nil {
		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	cancel()
	if err := listener.Stop(); err != nil {
		log.Error("app.rabbitmq.stop_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	log.Info("app.shutdown.completed", out.LogFields{})
}

func newStore(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (out.StorePort, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		adapter, err := mongodb.NewMongoStoreAdapter(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return adapter, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = adapter.Close(closeCtx)
		}, nil
	case config.StoreDriverMemory:
		return memory.NewMemoryStoreAdapter(logger), func() {}, nil
	default:
		return rest.NewRestStoreAdapter(cfg, logger), func() {}, nil
	}
}
