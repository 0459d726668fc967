// ABOUTME: Entry point for the Jukebox playback daemon
// ABOUTME: Parses CLI flags, sets up the FIFOs and runs the engine
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jukebox-Protocol/jukebox-go/internal/engine"
	"github.com/Jukebox-Protocol/jukebox-go/internal/fifo"
	"github.com/Jukebox-Protocol/jukebox-go/internal/version"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/output"
)

var (
	cmdPath    = flag.String("cmd", engine.DefaultCommandPath, "Command FIFO path")
	statusPath = flag.String("status", engine.DefaultStatusPath, "Status FIFO path")
	volume     = flag.Int("volume", 80, "Initial volume percent (0-100)")
	statusMs   = flag.Int("status-ms", 250, "Status emission interval in milliseconds")
	speaker    = flag.Bool("speaker", false, "Play through the local speaker instead of writing s16le to stdout")
	logFile    = flag.String("log-file", "", "Log file path (default: stderr only)")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	log.Printf("Starting %s daemon %s", version.Product, version.Version)
	log.Printf("Command FIFO: %s", *cmdPath)
	log.Printf("Status FIFO: %s", *statusPath)

	if err := fifo.Ensure(*cmdPath); err != nil {
		log.Fatalf("Failed to create command FIFO: %v", err)
	}
	if err := fifo.Ensure(*statusPath); err != nil {
		log.Fatalf("Failed to create status FIFO: %v", err)
	}

	var sink output.Output
	if *speaker {
		sink = output.NewOto()
	} else {
		sink = output.NewWriter(os.Stdout)
	}

	eng := engine.New(engine.Config{
		StatusInterval: time.Duration(*statusMs) * time.Millisecond,
		Volume:         *volume,
	}, sink, fifo.NewReader(*cmdPath), fifo.NewWriter(*statusPath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Shutdown signal received: %v", sig)
		cancel()
	}()

	if err := eng.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Engine failed: %v", err)
	}

	if err := sink.Close(); err != nil {
		log.Printf("Error closing output: %v", err)
	}
	log.Printf("Daemon stopped")
}
