package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gameforge/internal/platform/tui"
	"gameforge/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the forge SSH server",
	Long: `Start an SSH server that lets users connect and play starter scenes.

Each SSH connection gets its own session with the genre picker menu.
Scores and sessions are stored per-server and attributed to the SSH
username. With --http, a WebSocket spectator feed broadcasts session
events (runs started, scores, high scores) to anyone watching.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gameforge/host_key

Examples:
  gameforge serve                            # Listen on :23234 with auto-generated key
  gameforge serve --ssh :2222                # Listen on port 2222
  gameforge serve --http :8080               # Also serve the spectator feed
  gameforge serve --host-key ./my_host_key   # Use specific host key
  gameforge serve --db ./scores.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234

Spectators can watch with:
  websocat ws://localhost:8080/feed`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Spectator feed address (e.g. :8080, empty = disabled)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	//nolint:errcheck // No explicit path, cannot fail
	applyPresets("")

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	// Optional spectator feed; session events from SSH plays fan out to it
	var feed *web.Server
	if flagHTTPAddr != "" {
		hub := web.NewHub()
		feed = web.NewServer(web.ServerConfig{Address: flagHTTPAddr}, hub)
		server.SetSink(hub)

		go func() {
			if feedErr := feed.Serve(); feedErr != nil {
				fmt.Fprintf(os.Stderr, "Feed server error: %v\n", feedErr)
			}
		}()
	}

	fmt.Printf("Starting gameforge SSH server on %s\n", cfg.Address)
	if feed != nil {
		fmt.Printf("Spectator feed on ws://localhost%s/feed\n", flagHTTPAddr)
	}
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}

	if feed != nil {
		//nolint:errcheck // Already shutting down
		feed.Shutdown()
	}
}
