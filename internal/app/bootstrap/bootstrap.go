package bootstrap

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	councilengine "conclave/contexts/governance/council-engine"
	"conclave/contexts/governance/council-engine/adapters/memory"
	postgresadapter "conclave/contexts/governance/council-engine/adapters/postgres"
	"conclave/contexts/governance/council-engine/application/commands"
	workerapp "conclave/contexts/governance/council-engine/application/workers"
	"conclave/contexts/governance/council-engine/domain/entities"
	"conclave/internal/platform/config"
	"conclave/internal/platform/db"
	"conclave/internal/platform/httpserver"
	"conclave/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server       *httpserver.Server
	module       councilengine.Module
	simulator    *workerapp.Simulator
	postgres     *db.Postgres
	pollInterval time.Duration
	simInterval  time.Duration
	logger       *slog.Logger
}

// WorkerApp is a headless governance daemon: it seeds a council, lets the
// simulator vote, closes lapsed proposals, and exports the ledger.
type WorkerApp struct {
	module       councilengine.Module
	simulator    workerapp.Simulator
	closer       workerapp.ProposalCloser
	postgres     *db.Postgres
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	module, pg, err := buildModule(cfg, kafka, logger)
	if err != nil {
		return nil, err
	}

	app := &APIApp{
		server:       httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort)),
		module:       module,
		postgres:     pg,
		pollInterval: cfg.RelayPollInterval,
		simInterval:  cfg.SimulatorInterval,
		logger:       logger,
	}
	if cfg.EnableSimulator {
		sim := module.NewSimulator(rand.NewSource(time.Now().UnixNano()), cfg.SimulatorParticipation, logger)
		app.simulator = &sim
	}
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	module, pg, err := buildModule(cfg, kafka, logger)
	if err != nil {
		return nil, err
	}

	participation := cfg.SimulatorParticipation
	return &WorkerApp{
		module:    module,
		simulator: module.NewSimulator(rand.NewSource(time.Now().UnixNano()), participation, logger),
		closer: workerapp.ProposalCloser{
			Commands: module.Handler.Commands,
			Council:  module.Council,
			Clock:    postgresadapter.SystemClock{},
			Logger:   logger,
		},
		postgres:     pg,
		pollInterval: cfg.RelayPollInterval,
		logger:       logger,
	}, nil
}

// buildModule wires the council against postgres when a DSN is configured
// and against the in-memory store otherwise.
func buildModule(cfg config.Config, kafka *messaging.Kafka, logger *slog.Logger) (councilengine.Module, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		store := memory.NewStore()
		module, err := councilengine.NewModule(councilengine.Dependencies{
			Config:         cfg.Council,
			Archive:        store,
			Snapshots:      store,
			Publisher:      kafka,
			Subscriber:     kafka,
			Clock:          store,
			IDGen:          store,
			RelayBatchSize: cfg.RelayBatchSize,
			Logger:         logger,
		})
		if err != nil {
			return councilengine.Module{}, nil, err
		}
		module.Store = store
		return module, nil, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return councilengine.Module{}, nil, err
	}
	repo := postgresadapter.NewRepository(pg.DB, logger)
	module, err := councilengine.NewModule(councilengine.Dependencies{
		Config:         cfg.Council,
		Archive:        repo,
		Snapshots:      repo,
		Publisher:      kafka,
		Subscriber:     kafka,
		Clock:          postgresadapter.SystemClock{},
		IDGen:          postgresadapter.UUIDGenerator{},
		RelayBatchSize: cfg.RelayBatchSize,
		Logger:         logger,
	})
	if err != nil {
		_ = pg.Close()
		return councilengine.Module{}, nil, err
	}
	return module, pg, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.module.Projector != nil {
		if err := a.module.Projector.Start(ctx); err != nil {
			return err
		}
	}

	go a.runRelayLoop(ctx)
	if a.simulator != nil {
		go a.runSimulatorLoop(ctx)
	}

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) runRelayLoop(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		if err := a.module.Relay.RunOnce(ctx); err != nil {
			a.logger.Error("ledger relay cycle failed",
				"event", "bootstrap_relay_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *APIApp) runSimulatorLoop(ctx context.Context) {
	ticker := time.NewTicker(a.simInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = a.simulator.RunOnce(ctx)
		}
	}
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.module.Projector != nil {
		if err := w.module.Projector.Start(ctx); err != nil {
			return err
		}
	}
	if err := w.seedCouncil(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.simulator.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.closer.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.module.Relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// seedCouncil gives the headless daemon something to govern.
func (w *WorkerApp) seedCouncil(ctx context.Context) error {
	useCase := w.module.Handler.Commands

	seats := []struct {
		name   string
		energy uint64
	}{
		{"alice", 100},
		{"bob", 100},
		{"carol", 100},
		{"dave", 100},
		{"erin", 100},
	}
	for _, seat := range seats {
		if _, err := useCase.AddMember(ctx, commands.AddMemberCommand{
			Name:          seat.name,
			InitialEnergy: seat.energy,
		}); err != nil {
			return err
		}
	}

	proposals := []struct {
		title string
		risk  entities.RiskTier
	}{
		{"Rotate the on-call schedule", entities.RiskLow},
		{"Adopt the new ledger export format", entities.RiskMedium},
		{"Amend the council charter", entities.RiskHigh},
	}
	for _, p := range proposals {
		if _, err := useCase.Propose(ctx, commands.ProposeCommand{
			Title: p.title,
			Risk:  p.risk,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
