package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/stealthgrid/internal/fsutil"
	"github.com/Mshel/stealthgrid/internal/game"
	"github.com/Mshel/stealthgrid/internal/store"
	"github.com/Mshel/stealthgrid/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "6996"

	maxConnectionsPerIP = 2
)

type config struct {
	host       string
	port       string
	keyPath    string
	dbPath     string
	levelsDir  string
	saveDir    string
	logLevel   log.Level
	difficulty game.Difficulty
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func loadConfig() (config, error) {
	cfg := config{
		host:      getenv("STEALTH_HOST", defaultHost),
		port:      getenv("STEALTH_PORT", defaultPort),
		keyPath:   getenv("STEALTH_PRIVATE_KEY_PATH", ".ssh/stealth_ed25519"),
		dbPath:    getenv("STEALTH_DB_PATH", store.DefaultDBPath),
		levelsDir: os.Getenv("STEALTH_LEVELS_DIR"),
		saveDir:   getenv("STEALTH_SAVE_DIR", "saves"),
	}

	level, err := log.ParseLevel(getenv("STEALTH_LOG_LEVEL", "info"))
	if err != nil {
		return cfg, fmt.Errorf("STEALTH_LOG_LEVEL: %w", err)
	}
	cfg.logLevel = level

	d, err := game.ParseDifficulty(getenv("STEALTH_DIFFICULTY", "easy"))
	if err != nil {
		return cfg, fmt.Errorf("STEALTH_DIFFICULTY: %w", err)
	}
	cfg.difficulty = d
	return cfg, nil
}

// saveDirName turns an ssh user name into a single path component.
func saveDirName(user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, user)
	if name == "" {
		return "anonymous"
	}
	return name
}

// userFileSystem confines a connection's saves to its own directory under
// saveDir. If that directory cannot be opened, saves are kept in memory for
// the connection only.
func userFileSystem(s ssh.Session, saveDir string, logger *log.Logger) fsutil.FileSystem {
	dir := filepath.Join(saveDir, saveDirName(s.User()))
	rfs, err := fsutil.NewRootedFileSystem(dir)
	if err != nil {
		logger.Error("Save directory unavailable, saves will not persist", "dir", dir, "error", err)
		return fsutil.NewMemoryFileSystem()
	}
	go func() {
		<-s.Context().Done()
		rfs.Close()
	}()
	return rfs
}

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	mu        sync.Mutex
	ipCounter map[string]int
	limit     int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{ipCounter: make(map[string]int), limit: limit}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire reserves a slot for ip and reports the count it would reach.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ipCounter[ip] >= l.limit {
		return l.ipCounter[ip] + 1, false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", l.limit)
			fmt.Fprintf(s, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", count, l.limit)
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.logLevel)

	runs, err := store.Open(cfg.dbPath, log.Default())
	if err != nil {
		log.Fatal("Failed to open run history", "path", cfg.dbPath, "error", err)
	}
	defer runs.Close()

	levels := game.EmbeddedLevels()
	if cfg.levelsDir != "" {
		levels = game.DirLevels{FileSystem: fsutil.OSFileSystem{}, Dir: cfg.levelsDir}
	}

	limiter := newConnectionLimiter(maxConnectionsPerIP)
	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		logger := log.Default().With("user", sshSession.User(), "ip", getIP(sshSession))
		saves := userFileSystem(sshSession, cfg.saveDir, logger)
		opts := ui.Options{
			NewSession: func() *game.Session {
				return game.NewSession(game.WithLevelSource(levels), game.WithFileSystem(saves), game.WithLogger(logger))
			},
			Runs:       runs,
			Logger:     logger,
			PlayerName: sshSession.User(),
			Difficulty: cfg.difficulty,
		}
		return ui.NewControllerModel(opts, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{tea.WithAltScreen()}
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.host, cfg.port)),
		wish.WithHostKeyPath(cfg.keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			activeterm.Middleware(),
			limiter.middleware,
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("Failed to create ssh server", "error", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", cfg.host, "port", cfg.port, "saves", cfg.saveDir)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
