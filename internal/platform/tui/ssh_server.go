package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
	"github.com/vovakirdan/terragen/internal/terrain"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.terragen/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Params and MaxGenerations configure every session's generator.
	Params         terrain.Params
	MaxGenerations int

	// Color selects the colour renderer for sessions.
	Color bool

	// Delay is the viewer pause between snapshots.
	Delay time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:        ":23235",
		DBPath:         "~/.terragen/history.db",
		IdleTimeout:    30 * time.Minute,
		Params:         terrain.DefaultParams(),
		MaxGenerations: 2000,
		Color:          true,
		Delay:          DefaultDelay,
	}
}

// SSHServer wraps a Wish SSH server that lets each session generate and
// watch terrains.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid terrain params: %w", err)
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "terragen-ssh",
		})
	}

	// Open storage
	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
			// Continue without storage
			store = nil
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".terragen", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Styles must follow the client's terminal, not the server's.
	renderer := bubbletea.MakeRenderer(sshSession)

	model := NewSessionModel(SessionConfig{
		Store:          s.store,
		Params:         s.config.Params,
		MaxGenerations: s.config.MaxGenerations,
		Delay:          s.config.Delay,
		Renderer:       s.sessionRenderer(renderer),
		Theme:          NewTheme(renderer),
		Logger:         s.logger.With("user", sshSession.User()),
		Width:          pty.Window.Width,
		Height:         pty.Window.Height,
		Context:        sshSession.Context(),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) sessionRenderer(r *lipgloss.Renderer) render.Renderer {
	if s.config.Color {
		return render.NewColor(r)
	}
	return render.Plain{}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionConfig configures one session.
type SessionConfig struct {
	Store          *storage.Store
	Params         terrain.Params
	MaxGenerations int
	Delay          time.Duration
	Renderer       render.Renderer
	Theme          Theme
	Logger         *log.Logger
	Width          int
	Height         int

	// Context ends every viewer of the session when cancelled.
	Context context.Context
}

// SessionModel manages the full session flow: seed prompt -> viewer -> prompt.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	config   SessionConfig
	prompt   PromptModel
	watch    *WatchModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig) SessionModel {
	return SessionModel{
		config: cfg,
		prompt: NewPromptModel(cfg.Store, cfg.Theme, cfg.Width, cfg.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.prompt.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Width = wsm.Width
		m.config.Height = wsm.Height
	}

	if m.watch != nil {
		return m.updateWatch(msg)
	}
	return m.updatePrompt(msg)
}

// updatePrompt handles updates while asking for a seed.
func (m SessionModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPrompt, cmd := m.prompt.Update(msg)
	if promptModel, ok := newPrompt.(PromptModel); ok {
		m.prompt = promptModel
	}

	// Check if user quit
	if m.prompt.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if a seed was submitted
	if seed := m.prompt.Seed(); seed != nil {
		theme := m.config.Theme
		watch := NewWatchModel(WatchConfig{
			SeedText:       *seed,
			Params:         m.config.Params,
			MaxGenerations: m.config.MaxGenerations,
			Delay:          m.config.Delay,
			Renderer:       m.config.Renderer,
			Store:          m.config.Store,
			Logger:         m.config.Logger,
			Theme:          &theme,
			Context:        m.config.Context,
		})
		watch.width = m.config.Width
		watch.height = m.config.Height
		watch.help.Width = m.config.Width
		m.watch = &watch
		if m.config.Logger != nil {
			m.config.Logger.Info("generating", "seed", *seed)
		}
		return m, m.watch.Init()
	}

	return m, cmd
}

// updateWatch handles updates while a terrain is being shown.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if watchModel, ok := newModel.(WatchModel); ok {
		m.watch = &watchModel
	}

	// Check if user wants another seed
	if m.watch.BackToMenu() {
		m.watch = nil
		m.prompt = NewPromptModel(m.config.Store, m.config.Theme, m.config.Width, m.config.Height)
		return m, m.prompt.Init()
	}

	// Check if user quit entirely
	if m.watch.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.watch != nil {
		return m.watch.View()
	}

	return m.prompt.View()
}
