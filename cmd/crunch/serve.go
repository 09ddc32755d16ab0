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

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/platform/tui"
	"github.com/vovakirdan/cookie-crunch/internal/platform/ws"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Cookie Crunch over SSH and websockets",
	Long: `Start an SSH server with the level menu and a websocket server that
streams game events as JSON. Pass an empty address to disable either one.

Each connection gets its own game. All players share one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.crunch/host_key

Examples:
  crunch serve                           # SSH on :23234, websockets on :8080
  crunch serve --ssh :2222 --ws ""       # SSH only, on port 2222
  crunch serve --host-key ./my_host_key  # Use specific host key

Players can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws?level=level_0`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", ":8080", "Websocket server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagWSAddr == "" {
		exitf("nothing to serve: both --ssh and --ws are empty")
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idle := time.Duration(flagIdleTimeout) * time.Minute
	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = idle
		cfg.TickRate = flagFPS

		server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("crunch-ssh"))
		if err != nil {
			exitf("creating SSH server: %v", err)
		}
		fmt.Printf("SSH:        ssh localhost -p %s\n", portOf(cfg.Address))
		g.Go(func() error { return server.ListenAndServe(ctx) })
	}

	if flagWSAddr != "" {
		cfg := ws.DefaultServerConfig()
		cfg.Address = flagWSAddr
		cfg.Game = crunch.LoadConfig()
		cfg.ReadTimeout = idle

		server := ws.NewServer(cfg, store, logger.WithPrefix("crunch-ws"))
		fmt.Printf("Websocket:  ws://localhost:%s/ws?level=<id>\n", portOf(cfg.Address))
		g.Go(func() error { return server.ListenAndServe(ctx) })
	}

	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		exitf("server: %v", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
