package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/qnkhuat/tetristerm/pkg"
	"github.com/qnkhuat/tetristerm/pkg/config"
)

const shutdownTimeout = 10 * time.Second

var (
	listenAddressSSH string
	binary           string
	hostKey          string
	logPath          string

	done = make(chan bool)
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	flag.StringVar(&listenAddressSSH, "listen-ssh", cfg.SSHAddress, "host SSH server on network address")
	flag.StringVar(&binary, "binary", cfg.Binary, "path to tetristerm client")
	flag.StringVar(&hostKey, "host-key", cfg.SSHHostKey, "path to SSH host key")
	flag.StringVar(&logPath, "log", cfg.LogPath, "path to log file")
	flag.Parse()

	if binary == "" {
		log.Fatal("path to tetristerm client is required (--binary)")
	}
	if _, err := os.Stat(hostKey); err != nil {
		log.Printf("host key %s unavailable, generating one: %s", hostKey, err)
		hostKey = ""
	}

	pkg.InitLog(logPath, "SERVER: ")
	log.Println("Server started")

	s, err := pkg.NewServer(listenAddressSSH, binary, hostKey, cfg.SSHIdleTimeout)
	if err != nil {
		log.Fatalf("failed to create server: %s", err)
	}

	go func() {
		log.Printf("Listening at %s", listenAddressSSH)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("failed to serve: %s", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		done <- true
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Printf("failed to shut down cleanly: %s", err)
	}
	log.Println("Server stopped")
}
