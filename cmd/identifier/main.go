// Command identifier runs the media identification façade: an HTTP API
// that turns a filename or a title/year/season/episode tuple into
// enriched catalog metadata, backed by a Postgres cache and an optional
// LLM-classifier fallback. Adapted from CineVault's cmd/cinevault/main.go
// wiring shape (config → db → jobs → server → background loops → listen),
// trimmed to the collaborators this domain actually has.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/mediavault/identifier/internal/api"
	"github.com/mediavault/identifier/internal/audit"
	"github.com/mediavault/identifier/internal/cacherepo"
	"github.com/mediavault/identifier/internal/catalog"
	"github.com/mediavault/identifier/internal/config"
	"github.com/mediavault/identifier/internal/db"
	"github.com/mediavault/identifier/internal/identifier"
	"github.com/mediavault/identifier/internal/jobs"
	"github.com/mediavault/identifier/internal/llmclassifier"
	"github.com/mediavault/identifier/internal/maintenance"
	"github.com/mediavault/identifier/internal/wshub"
)

func main() {
	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("identifier: connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.Migrate(conn, "internal/db/migrations"); err != nil {
		log.Fatalf("identifier: run migrations: %v", err)
	}

	cfg.MergeFromDB(conn)

	cache := cacherepo.New(conn)

	catalogClient, err := catalog.NewClient(cfg.TMDBAPIKey, catalog.WithMinSimilarity(cfg.AutomatchMinSimilarity))
	if err != nil {
		log.Fatalf("identifier: create catalog client: %v", err)
	}

	classifier := llmclassifier.NewClient(llmclassifier.Config{
		APIKey:         cfg.OpenAIAPIKey,
		Organization:   cfg.OpenAIOrganization,
		Model:          cfg.OpenAIModel,
		TimeoutSeconds: cfg.RequestTimeoutSeconds,
	})

	queue := jobs.NewQueue(cfg.RedisAddr)

	auditRepo := audit.NewRepository(conn)
	auditWriter := audit.NewWriter(queue)
	audit.RegisterHandlers(queue, auditRepo)

	go func() {
		if err := queue.Start(context.Background()); err != nil {
			log.Printf("identifier: job queue worker stopped: %v", err)
		}
	}()
	defer queue.Stop()

	sweeper := maintenance.New(conn, func() int { return cfg.AuditRetentionDays })
	if err := sweeper.Start(); err != nil {
		log.Fatalf("identifier: start retention sweeper: %v", err)
	}
	defer sweeper.Stop()

	hub := wshub.NewHub()

	idf := &identifier.Identifier{
		Cache:      cache,
		Catalog:    catalogClient,
		Classifier: classifier,
		Logf:       log.Printf,
	}

	server := api.NewServer(cfg, idf, auditWriter, hub)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("identifier: listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("identifier: server failed: %v", err)
	}
}
