package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calcdex/bridge"
	"calcdex/config"
	"calcdex/logging"
	"calcdex/logging/sinks"
	"calcdex/presets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("calcdexd: %v", err)
	}

	router, err := buildRouter(cfg)
	if err != nil {
		log.Fatalf("calcdexd: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Close(ctx); err != nil {
			log.Printf("calcdexd: close router: %v", err)
		}
	}()

	catalogPaths := presets.DefaultCatalogPaths()
	if cfg.CatalogPath != "" {
		catalogPaths = []string{cfg.CatalogPath}
	}
	catalog, err := presets.LoadCatalog(catalogPaths...)
	if err != nil {
		log.Fatalf("calcdexd: load preset catalog: %v", err)
	}

	store, err := presets.OpenStore(cfg.CachePath, cfg.CacheMaxStaleness)
	if err != nil {
		log.Fatalf("calcdexd: open preset cache: %v", err)
	}
	defer store.Close()
	if pruned, err := store.Prune(); err != nil {
		log.Printf("calcdexd: prune preset cache: %v", err)
	} else if pruned > 0 {
		log.Printf("calcdexd: pruned %d stale preset pools", pruned)
	}

	hub := bridge.NewHub(router)
	defer hub.Close()

	session := bridge.NewSession(router, hub.Consumer(),
		bridge.WithCatalog(catalog),
		bridge.WithStore(store),
		bridge.WithSettings(presets.Settings{
			PrioritizeUsage:  cfg.PrioritizeUsage,
			AutoImportSheets: cfg.AutoImportSheets,
			DefaultLevel:     cfg.DefaultLevel,
		}),
	)

	feed := bridge.NewFeed(cfg.FeedURL, session.HandleFrame, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/updates", hub)
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	errCh := make(chan error, 2)
	go func() {
		log.Printf("calcdexd: serving updates on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go func() {
		log.Printf("calcdexd: consuming feed at %s", cfg.FeedURL)
		errCh <- feed.Run(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Printf("calcdexd: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("calcdexd: shutdown: %v", err)
	}
}

func buildRouter(cfg config.Settings) (*logging.Router, error) {
	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = cfg.LogSinks
	logCfg.BufferSize = cfg.LogBufferSize
	logCfg.MinimumSeverity = parseSeverity(cfg.LogMinSeverity)
	logCfg.JSON.FilePath = cfg.LogJSONPath

	var named []logging.NamedSink
	if logCfg.HasSink("console") {
		named = append(named, logging.NamedSink{Name: "console", Sink: sinks.NewConsoleSink(os.Stderr)})
	}
	if logCfg.HasSink("json") {
		sink, err := sinks.NewJSONSink(logCfg.JSON.FilePath)
		if err != nil {
			return nil, err
		}
		named = append(named, logging.NamedSink{Name: "json", Sink: sink})
	}
	return logging.NewRouter(logging.ClockFunc(time.Now), logCfg, named), nil
}

func parseSeverity(name string) logging.Severity {
	switch name {
	case "debug":
		return logging.SeverityDebug
	case "warn":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}
