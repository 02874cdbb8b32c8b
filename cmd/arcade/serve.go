package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arcade-classics/internal/platform/tui"
	"github.com/vovakirdan/arcade-classics/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
	flagSecret      string
	flagOrigins     []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu.
Players on the same server can meet in the Tic-Tac-Toe Online lobby.
Scores are stored per-server (all users share the same leaderboard).

With --http, the minesweeper HTTP/WebSocket API is served as well.
The token secret is read from --secret or ARCADE_WEB_SECRET.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --addr :2222              # Listen on port 2222
  arcade serve --http :8080              # Also serve the HTTP API
  arcade serve --db postgres://arcade@localhost/arcade

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "addr", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port); disabled when empty")
	serveCmd.Flags().StringVar(&flagSecret, "secret", "", "Secret for HTTP round tokens (default $ARCADE_WEB_SECRET)")
	serveCmd.Flags().StringSliceVar(&flagOrigins, "origins", nil, "Allowed CORS origins (default any)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("arcade-ssh")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS

	sshServer, err := tui.NewSSHServer(sshCfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	var webServer *web.Server
	if flagHTTPAddr != "" {
		webCfg := web.DefaultConfig()
		webCfg.Addr = flagHTTPAddr
		webCfg.Secret = flagSecret
		if webCfg.Secret == "" {
			webCfg.Secret = os.Getenv("ARCADE_WEB_SECRET")
		}
		webCfg.AllowedOrigins = flagOrigins

		webServer, err = web.NewServer(webCfg, store, newLogger("arcade-web"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating HTTP server: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(sshServer.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(ctx)
	})
	if webServer != nil {
		g.Go(func() error {
			return webServer.ListenAndServe(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
	logger.Info("bye")
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
