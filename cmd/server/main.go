package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacobjk03/Portfolio/internal/handlers"
	"github.com/jacobjk03/Portfolio/internal/profile"
	"github.com/jacobjk03/Portfolio/internal/services"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the server config file")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	prof, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	llm := services.NewGroq(os.Getenv("GROQ_API_KEY"), cfg.Model, logger)

	var store handlers.TranscriptStore
	if cfg.TranscriptPath != "" {
		boltDB, err := services.NewBoltDB(cfg.TranscriptPath)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := boltDB.Close(); err != nil {
				log.Printf("Failed to close transcript store: %v", err)
			}
		}()
		store = boltDB
	}

	m := handlers.NewMain(llm, prof, store, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", m.HandleChat)
	mux.HandleFunc("/healthz", m.HandleHealth)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Println("Server starting on :" + cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt/terminate signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking select waiting for either interrupt or server error
	select {
	case err := <-serverErrors:
		log.Printf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Start shutdown, signal: %v", sig)

		// Create context with timeout for shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
			if err := srv.Close(); err != nil {
				log.Printf("Forcing server close: %v", err)
			}
		}
	}
}
