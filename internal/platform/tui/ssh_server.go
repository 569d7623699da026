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
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	Address string // host:port to listen on

	// HostKeyPath defaults to ~/.blockfall/host_key and is generated on
	// first start.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// TickRate drives both local games and online matches.
	TickRate int
}

// DefaultSSHServerConfig returns the settings used by "blockfall serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blockfall/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves one menu per SSH connection. Online battles between
// connections go through a shared coordinator.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	logger      *log.Logger
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
}

// NewSSHServer builds the server. A database that cannot be opened is
// logged and the server runs without scores.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "blockfall-ssh"})

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		config:   cfg,
		logger:   logger,
		sessions: multiplayer.NewSessionRegistry(),
	}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("could not open scores database", "error", err)
		s.store = nil
	}

	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.TickRate = cfg.TickRate
	s.coordinator = multiplayer.NewCoordinator(coordCfg, blocks.NewOnlineGame, s.sessions)
	s.coordinator.SetLogger(logger)
	if s.store != nil {
		s.coordinator.SetResultSaver(s.store)
	}

	// Middlewares run last to first: log, require a PTY, then the program.
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		if s.store != nil {
			_ = s.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".blockfall", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newProgram registers the connection with the coordinator and returns its
// session model. The registration is undone when the connection closes.
func (s *SSHServer) newProgram(conn ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := conn.Pty()

	user := conn.User()
	if user == "" {
		user = "guest"
	}
	id := multiplayer.SessionID(fmt.Sprintf("%s-%d", user, time.Now().UnixNano()))
	session := multiplayer.NewChannelSession(id, user, 256)
	s.sessions.Register(session)
	s.logger.Debug("session registered", "user", user, "id", id, "active", s.sessions.Count())

	go func() {
		<-conn.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
		session.Close()
		s.sessions.Unregister(id)
	}()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.store, cfg, session, s.coordinator), []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections, cancels running matches and closes
// the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	if s.store != nil {
		err = errors.Join(err, s.store.Close())
	}
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
