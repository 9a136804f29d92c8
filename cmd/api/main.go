package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storeforge/api/internal/app"
	"storeforge/api/internal/assets"
	"storeforge/api/internal/config"
	"storeforge/api/internal/draft"
	"storeforge/api/internal/publish"
	"storeforge/api/internal/search"
	"storeforge/api/internal/store"
	"storeforge/api/internal/template"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := os.MkdirAll(cfg.ReposDir, 0o755); err != nil {
		log.Fatalf("failed to create repos dir: %v", err)
	}

	dataStore := store.NewPostgresStore(db)
	publishService := publish.New(cfg.ReposDir)

	drafts, err := draft.NewRedisStore(cfg.RedisURL, cfg.DraftTTL)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer drafts.Close()

	records := galleryRecords()
	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, search.NewMemory(records))
	searchService.Reindex(records)

	// A typed nil must not reach the service, or the asset routes would
	// dispatch on a dead client instead of reporting the feature off.
	var service *app.Service
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		media, err := assets.New(ctx, assets.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("media storage setup failed: %v", err)
		}
		service = app.New(cfg, dataStore, drafts, publishService, searchService, media)
	} else {
		log.Printf("Media storage disabled (MINIO_ENDPOINT not set)")
		service = app.New(cfg, dataStore, drafts, publishService, searchService, nil)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("StoreForge API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func galleryRecords() []search.TemplateRecord {
	records := make([]search.TemplateRecord, 0, len(template.Gallery))
	for _, def := range template.Gallery {
		records = append(records, search.TemplateRecord{
			ID:          def.ID,
			Name:        def.Name,
			Category:    def.Category,
			Description: def.Description,
			Features:    def.Features,
			Rating:      def.Rating,
			Downloads:   def.Downloads,
			Pro:         def.Pro,
		})
	}
	return records
}
