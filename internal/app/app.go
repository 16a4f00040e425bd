package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-league/internal/config"
	"github.com/riskibarqy/draft-league/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/draft-league/internal/infrastructure/account/jwtauth"
	cacherepo "github.com/riskibarqy/draft-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/resilience"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

// Storage is the repository set plus the transaction boundary over it.
type Storage struct {
	Repos usecase.Repositories
	Tx    usecase.Transactor
	Close func() error
}

// NewHTTPServer wires storage, identity and services behind the HTTP router.
// The returned close function releases storage and must run after the
// server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	storage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		storage.Repos.Players = cacherepo.NewPlayerRepository(storage.Repos.Players, cache.NewStore(cfg.CacheTTL))
	}
	if err := storage.Repos.Validate(); err != nil {
		_ = storage.Close()
		return nil, nil, err
	}

	handler := newHandler(cfg, storage, logger)
	router := httpapi.NewRouter(handler, newTokenVerifier(cfg, logger), logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, storage.Close, nil
}

// OpenStorage builds the repositories for cfg.StoreDriver. Postgres gets
// the bundled player catalog when its players table is empty.
func OpenStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (Storage, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		players, err := memory.SeedPlayers()
		if err != nil {
			return Storage{}, fmt.Errorf("load seed players: %w", err)
		}
		store := memory.NewStore(players)
		logger.Info("using in-memory store", "players", len(players))
		return Storage{
			Repos: usecase.Repositories{
				Leagues:  memory.NewLeagueRepository(store),
				Members:  memory.NewMembershipRepository(store),
				Teams:    memory.NewTeamRepository(store),
				Players:  memory.NewPlayerRepository(store),
				Picks:    memory.NewDraftRepository(store),
				Schedule: memory.NewScheduleRepository(store),
				Rosters:  memory.NewRosterRepository(store),
			},
			Tx:    store,
			Close: func() error { return nil },
		}, nil

	case config.StoreDriverPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return Storage{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return Storage{}, err
		}
		logger.Info("using postgres store", "db_name", dbNameFromURL(cfg.DBURL))
		return Storage{
			Repos: usecase.Repositories{
				Leagues:  postgres.NewLeagueRepository(db),
				Members:  postgres.NewMembershipRepository(db),
				Teams:    postgres.NewTeamRepository(db),
				Players:  postgres.NewPlayerRepository(db),
				Picks:    postgres.NewDraftRepository(db),
				Schedule: postgres.NewScheduleRepository(db),
				Rosters:  postgres.NewRosterRepository(db),
			},
			Tx:    postgres.NewTxManager(db, cfg.DBTxMaxRetries, logger),
			Close: db.Close,
		}, nil

	default:
		return Storage{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func newHandler(cfg config.Config, storage Storage, logger *logging.Logger) *httpapi.Handler {
	repos, tx := storage.Repos, storage.Tx
	ids := idgen.NewUUIDGenerator()

	members := usecase.NewMembershipService(repos, tx, logger)
	leagues := usecase.NewLeagueService(repos, members, tx, ids, logger)
	drafts := usecase.NewDraftService(repos, members, tx, ids, cfg.DraftRounds, logger)
	standings := usecase.NewStandingsService(repos, members, cfg.StandingsWorkers, logger)
	schedules := usecase.NewScheduleService(repos, members, drafts, standings, tx, ids, cfg.ScheduleWeeks, logger)
	rosters := usecase.NewRosterService(repos, members, logger)

	return httpapi.NewHandler(leagues, members, drafts, schedules, standings, rosters, logger)
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) httpapi.TokenVerifier {
	if cfg.AuthMode == config.AuthModeJWT {
		logger.Info("verifying bearer tokens locally", "issuer", cfg.JWTIssuer)
		return jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, nil)
	}

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.AnubisCircuitEnabled,
		FailureThreshold: cfg.AnubisCircuitFailureCount,
		OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
	}.WithDefaults()
	return anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		breaker,
		logger,
	)
}
