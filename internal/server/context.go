package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tickadd/internal/auth"
	"tickadd/internal/config"
	"tickadd/internal/launcher"
	"tickadd/internal/logging"
	"tickadd/internal/parser"
	"tickadd/internal/ticktick"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg    *config.Config
	store  *auth.Store
	parser *parser.Parser
	engine *launcher.Engine
	logger *slog.Logger

	client   *ticktick.Client
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. A missing token is not
// an error; the client stays nil until SetToken is called.
func NewServerContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServerContext, error) {
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	store := auth.NewStore(cfg.TokenPath, logger)
	p := parser.New(
		parser.WithMaxSuggestions(cfg.MaxSuggestions),
		parser.WithLogger(logger),
	)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
		store:  store,
		parser: p,
		engine: launcher.NewEngine(cfg, store, p, logger),
		logger: logger,
	}

	if token, err := store.Load(); err == nil {
		sc.client = sc.newClient(token)
		if err := sc.RefreshProjects(shutdownCtx); err != nil {
			logger.Warn("failed to load project directory",
				logging.Operation("refresh_projects"),
				logging.Err(err))
		}
	} else if !errors.Is(err, auth.ErrNoToken) {
		cancel()
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Store returns the token store.
func (sc *ServerContext) Store() *auth.Store {
	return sc.store
}

// Parser returns the shared parser.
func (sc *ServerContext) Parser() *parser.Parser {
	return sc.parser
}

// Engine returns the launcher engine.
func (sc *ServerContext) Engine() *launcher.Engine {
	return sc.engine
}

// Client returns the TickTick client, or nil when no token is stored.
func (sc *ServerContext) Client() *ticktick.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// SetToken persists a new access token, rebuilds the API client and
// refreshes the project directory.
func (sc *ServerContext) SetToken(ctx context.Context, token string) error {
	if err := sc.store.Save(token); err != nil {
		return err
	}

	sc.mu.Lock()
	sc.client = sc.newClient(token)
	sc.mu.Unlock()

	return sc.RefreshProjects(ctx)
}

// RefreshProjects fetches the project directory and swaps in a fresh
// index. The previous index stays valid for in-flight parses.
func (sc *ServerContext) RefreshProjects(ctx context.Context) error {
	client := sc.Client()
	if client == nil {
		return fmt.Errorf("not authenticated")
	}

	projects, err := client.GetProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh projects: %w", err)
	}

	entries := make([]parser.Project, len(projects))
	for i, p := range projects {
		entries[i] = parser.Project{ID: p.ID, Name: p.Name}
	}
	sc.parser.SetProjects(parser.NewProjectIndex(entries))

	sc.logger.Info("project directory refreshed",
		logging.Operation("refresh_projects"),
		logging.Status(logging.StatusSuccess),
		slog.Int("projects", len(entries)))

	return nil
}

func (sc *ServerContext) newClient(token string) *ticktick.Client {
	return ticktick.NewClient(sc.cfg.APIBaseURL, auth.HTTPClient(sc.ctx, token), sc.logger)
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
