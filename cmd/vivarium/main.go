package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vivarium/server/internal/component"
	"github.com/vivarium/server/internal/config"
	"github.com/vivarium/server/internal/core/ecs"
	"github.com/vivarium/server/internal/core/event"
	coresys "github.com/vivarium/server/internal/core/system"
	"github.com/vivarium/server/internal/data"
	gonet "github.com/vivarium/server/internal/net"
	"github.com/vivarium/server/internal/persist"
	"github.com/vivarium/server/internal/scripting"
	"github.com/vivarium/server/internal/system"
	"github.com/vivarium/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("VIVARIUM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("vivarium starting",
		zap.String("server", cfg.Server.Name),
		zap.Int("id", cfg.Server.ID))

	// 3. Optional Postgres event journal
	var eventRepo *persist.EventRepo
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		cancel()
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		migCtx, migCancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = persist.RunMigrations(migCtx, db.Pool)
		migCancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		eventRepo = persist.NewEventRepo(db)
		log.Info("event journal enabled")
	} else {
		log.Info("event journal disabled (no dsn configured)")
	}

	// 4. Core runtime: entity world, event bus, lifecycle scheduler
	ecsWorld := ecs.NewWorld()
	bus := event.NewBus()
	lifecycle := coresys.NewLifecycle()
	state := world.NewState(ecsWorld, bus, lifecycle, log)

	// 5. Seed rooms from YAML
	seeds, err := data.LoadRoomSeeds(cfg.Simulation.RoomSeeds)
	if err != nil {
		return fmt.Errorf("load room seeds: %w", err)
	}
	for _, seed := range seeds.All() {
		state.CreateRoom(component.Room{
			ID:          seed.ID,
			Name:        seed.Name,
			Description: seed.Description,
			Type:        seed.Type,
		})
	}
	log.Info("rooms seeded", zap.Int("count", seeds.Count()))

	// 6. Lua hooks
	luaEngine, err := scripting.NewEngine(cfg.Simulation.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	event.Subscribe(bus, func(ev event.AgentMoved) {
		luaEngine.CallRoomEnter(state.RoomState(ev.To).ID, uint64(ev.Agent))
	})

	// 7. Observer feed
	netServer, err := gonet.NewServer(cfg.Network.BindAddress, cfg.Network.WriteTimeout, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.Serve()
	log.Info("observer feed listening", zap.Stringer("addr", netServer.Addr()))

	// 8. Systems
	runner := coresys.NewRunner(lifecycle)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewDecaySystem(state, log))
	runner.Register(system.NewIdleSystem(state, cfg.Simulation.IdleAfter))
	runner.Register(system.NewBroadcastSystem(bus, netServer, log))
	if eventRepo != nil {
		runner.Register(system.NewJournalSystem(bus, eventRepo, log))
	}
	runner.Register(system.NewCleanupSystem(ecsWorld))

	// 9. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("simulation running", zap.Duration("tick", cfg.Simulation.TickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			// Final tick flushes pending events to journal and feed.
			runner.Tick(cfg.Simulation.TickRate)
			netServer.Shutdown()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
