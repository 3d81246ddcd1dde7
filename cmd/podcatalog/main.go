// Command podcatalog wires a document store, identity, catalog, and audit
// trail together and exports a flattened asset manifest as NDJSON on
// stdout. It is the bulk-export entry point; interactive surfaces live
// outside this module.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podvault-labs/podcatalog/internal/aggregate"
	"github.com/podvault-labs/podcatalog/internal/audit"
	"github.com/podvault-labs/podcatalog/internal/catalog"
	"github.com/podvault-labs/podcatalog/internal/config"
	"github.com/podvault-labs/podcatalog/internal/platform/docstore"
	"github.com/podvault-labs/podcatalog/internal/platform/env"
	"github.com/podvault-labs/podcatalog/internal/platform/identity"
)

type manifestEntry struct {
	ID          string    `json:"id"`
	DataSpaceID string    `json:"data_space_id"`
	Title       string    `json:"title"`
	Access      string    `json:"access"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category,omitempty"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(env.String("PODCATALOG_CONFIG", "podcatalog.yaml"))
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ids, err := buildIdentity(ctx, cfg)
	if err != nil {
		logger.Error("invalid identity config", "error", err)
		os.Exit(2)
	}
	if cfg.Identity.Mode == "oidc" {
		ccCfg, err := identity.ClientCredentialsConfigFromEnv()
		if err != nil {
			logger.Error("invalid client credentials config", "error", err)
			os.Exit(2)
		}
		source, err := identity.NewTokenSource(ctx, ccCfg)
		if err != nil {
			logger.Error("token source init failed", "error", err)
			os.Exit(1)
		}
		ctx, err = identity.ContextWithTokenSource(ctx, source)
		if err != nil {
			logger.Error("token fetch failed", "error", err)
			os.Exit(1)
		}
	}

	var bus *audit.Bus
	if cfg.Audit.Container != "" {
		appender, err := audit.NewAppender(store, cfg.Audit.Container)
		if err != nil {
			logger.Error("invalid audit config", "error", err)
			os.Exit(2)
		}
		bus = audit.NewBus(appender, logger, cfg.Audit.BusBuffer)
		defer bus.Close()
	}

	cat, err := catalog.New(store, ids, bus, logger)
	if err != nil {
		logger.Error("catalog init failed", "error", err)
		os.Exit(2)
	}
	agg, err := aggregate.New(cat)
	if err != nil {
		logger.Error("aggregation init failed", "error", err)
		os.Exit(2)
	}

	result, err := agg.RetrieveAll(ctx, cfg.Export.Limit)
	if err != nil {
		logger.Error("retrieve failed", "error", err)
		os.Exit(1)
	}
	for _, srcErr := range result.Errors {
		logger.Warn("data space skipped", "data_space", srcErr.DataSpaceID, "error", srcErr.Err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, a := range result.Assets {
		entry := manifestEntry{
			ID:          a.ID,
			DataSpaceID: a.BelongsTo,
			Title:       a.Title,
			Access:      string(a.Access),
			CreatedBy:   a.CreatedBy,
			CreatedAt:   a.CreatedAt,
			Tags:        a.Tags,
			Category:    a.Category,
		}
		if err := enc.Encode(entry); err != nil {
			logger.Error("write manifest", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("manifest exported", "assets", len(result.Assets), "failed_sources", len(result.Errors))
}

func openStore(ctx context.Context, cfg config.Config) (docstore.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendMinio:
		minioCfg, err := docstore.MinioConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		store, err := docstore.NewMinioStore(minioCfg)
		if err != nil {
			return nil, nil, err
		}
		startupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.EnsureBucket(startupCtx); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.BackendPostgres:
		pgCfg, err := docstore.PostgresConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		store, err := docstore.OpenPostgresStore(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return docstore.NewMemoryStore(), func() {}, nil
	}
}

func buildIdentity(ctx context.Context, cfg config.Config) (identity.Resolver, error) {
	if cfg.Identity.Mode == "static" {
		return identity.Static{WebID: cfg.Identity.StaticWebID}, nil
	}
	idCfg, err := identity.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return identity.NewResolver(ctx, idCfg)
}
