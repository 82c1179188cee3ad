package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meridian/pkg/config"
	"meridian/pkg/handler"
	"meridian/pkg/knowledge"
	"meridian/pkg/llm"
	_ "meridian/pkg/llm/autoload" // register generation providers
	"meridian/pkg/monitor"
	"meridian/pkg/server"
)

func main() {
	log.Println("==========================================")

	cfg, err := config.Load("config.json")
	if err != nil {
		log.Printf("⚠️ Warning: Failed to load config.json: %v\n", err)
		log.Printf("Using default/empty config.\n")
		cfg = &config.Config{}
	}
	sysCfg := config.LoadSystemConfig("system.json")

	monitor.SetupSlog(sysCfg.LogLevel)

	corpus, err := knowledge.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		log.Fatalf("❌ Failed to load knowledge corpus: %v\n", err)
	}
	retriever := knowledge.NewRetriever(corpus, sysCfg.RetrievalLimit)
	slog.Info("Knowledge corpus loaded", "entries", retriever.Size())

	// A missing credential is surfaced per request, not at startup, so the
	// server still comes up for health checks and seeding.
	credential := cfg.ResolveCredential()
	var client llm.StructuredClient
	if credential == "" {
		slog.Warn("No generation credential configured; agent turns will fail until one is set")
	} else {
		client, err = llm.NewFromConfig(cfg.LLM, sysCfg)
		if err != nil {
			slog.Warn("Failed to init generation client", "error", err)
		}
	}

	h := handler.NewAgentHandler(client, retriever, credential, sysCfg, monitor.NewTurnLogger())

	srv := server.New(cfg.ListenPort(sysCfg), h)
	srv.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hot-reload the corpus when its file changes on disk.
	if cfg.CorpusPath != "" {
		go func() {
			for path := range config.Watch(ctx, cfg.CorpusPath) {
				reloaded, err := knowledge.LoadCorpus(path)
				if err != nil {
					slog.Warn("Corpus reload failed", "path", path, "error", err)
					continue
				}
				retriever.Reload(reloaded)
				slog.Info("Knowledge corpus reloaded", "entries", retriever.Size())
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("\nReceived shutdown signal. Stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(sysCfg.ShutdownTimeoutMs)*time.Millisecond)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Shutdown did not drain cleanly", "error", err)
	}
	log.Println("Bye!")
}
