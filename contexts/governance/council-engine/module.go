package councilengine

import (
	"log/slog"
	"math/rand"

	httpadapter "conclave/contexts/governance/council-engine/adapters/http"
	"conclave/contexts/governance/council-engine/adapters/memory"
	"conclave/contexts/governance/council-engine/application/commands"
	"conclave/contexts/governance/council-engine/application/queries"
	"conclave/contexts/governance/council-engine/application/workers"
	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Council   *council.Council
	Relay     *workers.LedgerRelay
	Projector *workers.RosterProjector
	Store     *memory.Store
}

type Dependencies struct {
	Config         council.Config
	Archive        ports.LedgerArchive
	Snapshots      ports.MemberSnapshotStore
	Publisher      ports.EventPublisher
	Subscriber     ports.EventSubscriber
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	ExecutionHook  council.ExecutionHook
	RelayBatchSize int
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) (Module, error) {
	opts := []council.Option{}
	if deps.Clock != nil {
		opts = append(opts, council.WithClock(deps.Clock.Now))
	}
	governingCouncil, err := council.New(deps.Config, opts...)
	if err != nil {
		return Module{}, err
	}

	councilUseCase := commands.CouncilUseCase{
		Council: governingCouncil,
		Hook:    deps.ExecutionHook,
		Logger:  deps.Logger,
	}
	relay := &workers.LedgerRelay{
		Council:   governingCouncil,
		Archive:   deps.Archive,
		Publisher: deps.Publisher,
		IDGen:     deps.IDGen,
		Clock:     deps.Clock,
		BatchSize: deps.RelayBatchSize,
		Logger:    deps.Logger,
	}
	var projector *workers.RosterProjector
	if deps.Subscriber != nil && deps.Snapshots != nil {
		projector = &workers.RosterProjector{
			Subscriber: deps.Subscriber,
			Snapshots:  deps.Snapshots,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		}
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands:  councilUseCase,
			Roster:    queries.RosterUseCase{Council: governingCouncil},
			Proposals: queries.ProposalsUseCase{Council: governingCouncil},
			Ledger:    queries.LedgerUseCase{Council: governingCouncil},
			Logger:    deps.Logger,
		},
		Council:   governingCouncil,
		Relay:     relay,
		Projector: projector,
	}, nil
}

// NewInMemoryModule wires the module against the in-memory store and a
// no-op-friendly publisher, for tests and DSN-less local runs.
func NewInMemoryModule(cfg council.Config, publisher ports.EventPublisher, logger *slog.Logger) (Module, error) {
	store := memory.NewStore()
	module, err := NewModule(Dependencies{
		Config:    cfg,
		Archive:   store,
		Snapshots: store,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	if err != nil {
		return Module{}, err
	}
	module.Store = store
	return module, nil
}

// NewSimulator builds the absent-voter simulator against this module's
// council and command path.
func (m Module) NewSimulator(source rand.Source, participation float64, logger *slog.Logger) workers.Simulator {
	return workers.Simulator{
		Commands:      m.Handler.Commands,
		Council:       m.Council,
		Rand:          rand.New(source),
		Participation: participation,
		Logger:        logger,
	}
}
