package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terragen/internal/config"
	"github.com/vovakirdan/terragen/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagPlain       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the terragen SSH server",
	Long: `Start an SSH server where every connection types a seed and watches
its terrain settle.

Each SSH connection gets its own session with a seed prompt.
Saved runs go to the server's history database (shared by all users).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.terragen/host_key

Examples:
  terragen serve                           # Listen on the configured address
  terragen serve --ssh :2222               # Listen on port 2222
  terragen serve --host-key ./my_host_key  # Use specific host key
  terragen serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
	serveCmd.Flags().BoolVar(&flagPlain, "plain", false, "Serve uncoloured grids")
	addGenerationFlags(serveCmd)
}

// serverConfig builds the SSH server configuration from cfg and flags.
func serverConfig(c config.Config) tui.SSHServerConfig {
	sc := tui.DefaultSSHServerConfig()
	sc.Address = c.Server.Address
	sc.HostKeyPath = c.Server.HostKey
	sc.DBPath = c.Storage.DBPath
	sc.IdleTimeout = c.Server.IdleTimeout()
	sc.Params = c.Params()
	sc.MaxGenerations = c.Generation.MaxGenerations
	sc.Color = c.Render.Mode != config.RenderPlain

	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		c.Server.IdleTimeoutMinutes = flagIdleTimeout
		sc.IdleTimeout = c.Server.IdleTimeout()
	}
	if flagPlain {
		sc.Color = false
	}
	return sc
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := applyGenerationFlags(); err != nil {
		return err
	}

	sc := serverConfig(cfg)
	server, err := tui.NewSSHServer(sc, logger.WithPrefix("terragen-ssh"))
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting terragen SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
